package backlog

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxCount is the largest page size the Backlog API accepts.
const MaxCount = 100

// DefaultSort orders issues by status, matching the board columns.
const DefaultSort = "status"

// IssueQuery filters GET /issues.
type IssueQuery struct {
	ProjectIDs []string // Required: sent as repeated projectId[]
	StatusIDs  []string // Required: sent as repeated statusId[]
	Count      int      // Page size; 0 or anything above MaxCount means MaxCount
	Sort       string   // Defaults to DefaultSort
}

// ParseIDList splits a comma separated id list such as "1,2, 3",
// dropping blank entries.
func ParseIDList(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func clampCount(n int) int {
	if n <= 0 || n > MaxCount {
		return MaxCount
	}
	return n
}

// values builds the query string for the issue listing, without apiKey.
func (q IssueQuery) values() (url.Values, error) {
	const op = "fetch issues"
	if len(q.ProjectIDs) == 0 {
		return nil, configError(op, "project id is required")
	}
	if len(q.StatusIDs) == 0 {
		return nil, configError(op, "at least one status id is required")
	}

	v := url.Values{}
	for _, id := range q.ProjectIDs {
		v.Add("projectId[]", id)
	}
	for _, id := range q.StatusIDs {
		v.Add("statusId[]", id)
	}
	v.Set("count", strconv.Itoa(clampCount(q.Count)))

	sort := q.Sort
	if sort == "" {
		sort = DefaultSort
	}
	v.Set("sort", sort)
	return v, nil
}

// commentValues builds the query string for a comment listing.
func commentValues() url.Values {
	v := url.Values{}
	v.Set("order", "asc")
	v.Set("count", strconv.Itoa(MaxCount))
	return v
}
