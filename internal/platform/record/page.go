package record

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Page is one offset-paginated slice of a collection.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	LastPage   int   `json:"lastPage"`
}

// NewPage fills in LastPage as ceil(total/perPage).
func NewPage[T any](items []T, total int64, page, perPage int) Page[T] {
	page, perPage = NormalizePaging(page, perPage)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
		LastPage:   LastPage(total, perPage),
	}
}

func LastPage(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// NormalizePaging clamps page to >= 1 and perPage to (0, MaxPerPage].
func NormalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T, U any](in Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Items:      items,
		TotalCount: in.TotalCount,
		Page:       in.Page,
		PerPage:    in.PerPage,
		LastPage:   in.LastPage,
	}
}
