package shared

// CountedRows is a list of rows together with a count. Depending on the
// query the count is either the total number of matching rows or the size
// of the returned slice; each query documents which.
type CountedRows[T any] struct {
	Count int64 `json:"count"`
	Rows  []T   `json:"rows"`
}

// NewCountedRows builds a CountedRows whose count is len(rows).
func NewCountedRows[T any](rows []T) CountedRows[T] {
	if rows == nil {
		rows = []T{}
	}
	return CountedRows[T]{Count: int64(len(rows)), Rows: rows}
}
