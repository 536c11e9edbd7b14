package domain

import "math"

const (
	DefaultRowCount = 10
	MaxRowCount     = 100
)

// ListParams is a page request against a content type.
type ListParams struct {
	Current      int    // 1-based
	RowCount     int    // page size
	SearchPhrase string // optional, case-insensitive substring
}

// Normalize clamps the page request to sane bounds.
func (p ListParams) Normalize() ListParams {
	if p.Current < 1 {
		p.Current = 1
	}
	if p.RowCount < 1 {
		p.RowCount = DefaultRowCount
	}
	if p.RowCount > MaxRowCount {
		p.RowCount = MaxRowCount
	}
	// Pages past the addressable range are simply empty.
	if maxCurrent := math.MaxInt / p.RowCount; p.Current > maxCurrent {
		p.Current = maxCurrent
	}
	return p
}

// Skip is the number of rows before the requested page. It never goes
// negative and saturates at math.MaxInt.
func (p ListParams) Skip() int {
	if p.Current < 1 || p.RowCount < 1 {
		return 0
	}
	if p.Current-1 > math.MaxInt/p.RowCount {
		return math.MaxInt
	}
	return (p.Current - 1) * p.RowCount
}

// ListResult is one page of rows plus the filtered total.
type ListResult struct {
	Rows  any
	Total int64
}

// UserFilter is the persistence-level query for the users listing.
type UserFilter struct {
	Search string
	Skip   int
	Limit  int
}
