package views

// Paginator keeps a cursor over a list shown one page at a time, as the
// table of contents is. The page always follows the cursor.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator creates a paginator showing pageSize items per page
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{size: pageSize}
}

// SetTotal sets the number of items and pulls the cursor back into range
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to pos, clamped to the items
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(min(pos, p.total-1), 0)
}

// CursorUp moves the cursor up by one and reports whether it moved
func (p *Paginator) CursorUp() bool {
	before := p.cursor
	p.SetCursor(p.cursor - 1)
	return p.cursor != before
}

// CursorDown moves the cursor down by one and reports whether it moved
func (p *Paginator) CursorDown() bool {
	before := p.cursor
	p.SetCursor(p.cursor + 1)
	return p.cursor != before
}

// NextPage moves the cursor to the first item of the next page
func (p *Paginator) NextPage() bool {
	next := (p.cursor/p.size + 1) * p.size
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage moves the cursor to the first item of the previous page
func (p *Paginator) PrevPage() bool {
	page := p.cursor / p.size
	if page == 0 {
		return false
	}
	p.cursor = (page - 1) * p.size
	return true
}

// VisibleRange returns the half-open range of items on the cursor's page
func (p *Paginator) VisibleRange() (start, end int) {
	start = (p.cursor / p.size) * p.size
	return start, min(start+p.size, p.total)
}

// TotalPages returns the number of pages, at least one
func (p *Paginator) TotalPages() int {
	return max((p.total+p.size-1)/p.size, 1)
}

// CurrentPage returns the 1-based page of the cursor
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.size + 1
}

// Reset empties the paginator
func (p *Paginator) Reset() {
	p.cursor = 0
	p.total = 0
}
