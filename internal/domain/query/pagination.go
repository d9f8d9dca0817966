// Package query carries cross-entity query parameter types.
package query

// Pagination expresses cursor or offset pagination for list operations.
// Limit and Offset are optional; After is a cursor on the numeric primary
// key. Order is "asc" or "desc".
type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
	After  *uint
}
