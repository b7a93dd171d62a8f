package datatable

const (
	// DefaultItemsPerPage is used when a non-positive page size is set.
	DefaultItemsPerPage = 10

	// WindowSize is the number of page links offered around the current page.
	WindowSize = 5
)

// TotalPages returns ceil(totalItems/itemsPerPage), never below zero.
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// PageWindow returns at most size consecutive page numbers centred on
// current and clamped to [1, totalPages]. When the end is clamped the start
// is pulled back so the window stays size wide if enough pages exist.
func PageWindow(current, totalPages, size int) []int {
	if size <= 0 || totalPages <= 0 {
		return nil
	}
	half := size / 2
	start := max(1, current-half)
	end := min(totalPages, start+size-1)
	if end-start+1 < size {
		start = max(1, end-size+1)
	}
	if end < start {
		return nil
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Slice returns data[(page-1)*perPage : page*perPage], clipped to the data.
// Out-of-range pages give an empty slice. The returned slice shares
// storage with data and must not be appended to.
func Slice[R any](data []R, page, perPage int) []R {
	if perPage <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(data) {
		return nil
	}
	end := min(start+perPage, len(data))
	return data[start:end:end]
}

// DisplayRange returns the 1-based first and last item numbers shown on
// page for a "showing X–Y of Z" label.
func DisplayRange(page, perPage, total int) (start, end int) {
	start = (page-1)*perPage + 1
	end = min(page*perPage, total)
	return start, end
}

// Pager holds pagination parameters.
type Pager struct {
	CurrentPage  int
	ItemsPerPage int

	// TotalItems overrides the item count when positive.
	TotalItems int
}

// NewPager returns a pager on page 1 with the given page size.
func NewPager(itemsPerPage int) Pager {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return Pager{CurrentPage: 1, ItemsPerPage: itemsPerPage}
}

// Effective returns TotalItems when set and dataLen otherwise.
func (p Pager) Effective(dataLen int) int {
	if p.TotalItems > 0 {
		return p.TotalItems
	}
	return dataLen
}

// TotalPages returns the page count for dataLen locally held rows.
func (p Pager) TotalPages(dataLen int) int {
	return TotalPages(p.Effective(dataLen), p.ItemsPerPage)
}

// Window returns the page-number window for dataLen rows.
func (p Pager) Window(dataLen int) []int {
	return PageWindow(p.CurrentPage, p.TotalPages(dataLen), WindowSize)
}

// GoTo moves to page if 1 <= page <= TotalPages and reports whether it did.
func (p *Pager) GoTo(page, dataLen int) bool {
	if page < 1 || page > p.TotalPages(dataLen) {
		return false
	}
	p.CurrentPage = page
	return true
}
