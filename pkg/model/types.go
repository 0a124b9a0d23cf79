package model

import (
	"fmt"
	"strings"
)

// Issue represents a Backlog issue as returned by GET /issues.
type Issue struct {
	ID          int    `json:"id"`
	IssueKey    string `json:"issueKey"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Assignee    *User  `json:"assignee"`
	Updated     string `json:"updated"`
	Status      Status `json:"status"`

	// Comments is filled lazily by the store, never by the decoder.
	// nil means the comments have not been fetched yet; a non-nil slice
	// (possibly empty) means they have.
	Comments []Comment `json:"-"`
}

// CommentsLoaded reports whether the comment thread has been fetched.
func (i Issue) CommentsLoaded() bool {
	return i.Comments != nil
}

// AssigneeName returns the assignee's name or "" when unassigned.
func (i Issue) AssigneeName() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.Name
}

// Clone creates a deep copy of the issue
func (i Issue) Clone() Issue {
	clone := i

	if i.Assignee != nil {
		v := *i.Assignee
		clone.Assignee = &v
	}

	if i.Comments != nil {
		clone.Comments = make([]Comment, len(i.Comments))
		for idx, comment := range i.Comments {
			clone.Comments[idx] = comment.Clone()
		}
	}

	return clone
}

// Validate checks if the issue data is logically valid
func (i *Issue) Validate() error {
	if i.ID == 0 {
		return fmt.Errorf("issue ID cannot be empty")
	}
	if strings.TrimSpace(i.IssueKey) == "" {
		return fmt.Errorf("issue %d: issue key cannot be empty", i.ID)
	}
	return nil
}

// Status is the workflow state of an issue. Colors are supplied by the
// server as "#rrggbb" strings.
type Status struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// User references a Backlog user.
type User struct {
	Name string `json:"name"`
}

// Comment represents a comment on an issue
type Comment struct {
	Content     *string `json:"content"`
	CreatedUser User    `json:"createdUser"`
	Created     string  `json:"created"`
	Updated     string  `json:"updated"`
}

// Text returns the comment body, "" when the server sent null.
func (c Comment) Text() string {
	if c.Content == nil {
		return ""
	}
	return *c.Content
}

// IsNoise returns true for comments without any content. Backlog records
// field changes (status, assignee) as comments with a null body.
func (c Comment) IsNoise() bool {
	return c.Content == nil || *c.Content == ""
}

// Clone creates a deep copy of the comment
func (c Comment) Clone() Comment {
	clone := c
	if c.Content != nil {
		v := *c.Content
		clone.Content = &v
	}
	return clone
}
