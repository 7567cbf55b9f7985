package models

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePagination clamps page and size to sane bounds.
func NormalizePagination(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}

	if size < 1 {
		size = DefaultPageSize
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size
}
