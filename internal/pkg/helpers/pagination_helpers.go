package helpers

import (
	"net/url"
	"strconv"

	"github.com/yigit/librarium/internal/app/models/dto"
)

// Page size bounds for console change lists
const (
	DefaultPageSize = 100
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Window is the slice of a counted result set that one page shows
type Window struct {
	Offset uint64
	Limit  int
	Info   dto.PaginationInfo
}

// Paginate picks the rows of the 1-based page out of total. Pages past the
// end land on the last page, so Offset never exceeds total and Info always
// describes the rows actually returned.
func Paginate(total int64, page, size int) Window {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	// An empty list still has one (empty) page.
	lastPage := int64(1)
	if total > 0 {
		lastPage = (total + int64(size) - 1) / int64(size)
	}
	current := int64(page)
	switch {
	case current < 1:
		current = DefaultPage
	case current > lastPage:
		current = lastPage
	}

	return Window{
		Offset: uint64(current-1) * uint64(size),
		Limit:  size,
		Info: dto.PaginationInfo{
			CurrentPage: int(current),
			TotalPages:  int(lastPage),
			PageSize:    size,
			TotalItems:  total,
		},
	}
}

// ParsePage reads the 1-based page number from query values. Anything that
// is not a positive integer means the first page.
func ParsePage(values url.Values) int {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}
