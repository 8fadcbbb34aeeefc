package calendar

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page — una página de elementos.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`      // desde 1
	PageSize int  `json:"page_size"` // elementos por página
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
	Total    int  `json:"total"`
}

// Paginate recorta items a la página pedida. Valores no válidos usan los
// predeterminados y pageSize nunca pasa de MaxPageSize.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)

	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	// page-1 se compara antes de multiplicar para no desbordar
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Page[T]{
		Items:    pageItems,
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
