package ui

// Layout breakpoints for responsive design.
const (
	// BreakpointMedium is the width above which the list and detail panes
	// sit side by side. Below it they stack vertically.
	BreakpointMedium = 100

	// MinPaneWidth keeps panes readable on tiny terminals.
	MinPaneWidth = 20

	// MinContentHeight is the minimum height for scrollable content areas.
	MinContentHeight = 3

	// chromeHeight is the status bar plus the help line.
	chromeHeight = 2

	// borderSize is what a rounded border adds on each axis.
	borderSize = 2
)

// paneLayout is the computed geometry of both panes, content sizes
// excluding borders.
type paneLayout struct {
	vertical     bool
	listWidth    int
	listHeight   int
	detailWidth  int
	detailHeight int
}

// computeLayout splits the terminal 50/50, horizontally when wide and
// vertically when narrow.
func computeLayout(width, height int) paneLayout {
	avail := height - chromeHeight
	if avail < 2*(MinContentHeight+borderSize) {
		avail = 2 * (MinContentHeight + borderSize)
	}
	if width < MinPaneWidth+borderSize {
		width = MinPaneWidth + borderSize
	}

	if width < BreakpointMedium {
		top := avail / 2
		return paneLayout{
			vertical:     true,
			listWidth:    width - borderSize,
			listHeight:   top - borderSize,
			detailWidth:  width - borderSize,
			detailHeight: avail - top - borderSize,
		}
	}

	left := width / 2
	return paneLayout{
		listWidth:    left - borderSize,
		listHeight:   avail - borderSize,
		detailWidth:  width - left - borderSize,
		detailHeight: avail - borderSize,
	}
}
