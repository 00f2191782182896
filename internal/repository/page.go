package repository

import (
	"fmt"
	"math"
	"strings"
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order sorts a page by one entity property
type Order struct {
	Property  string
	Direction Direction
}

// String renders the order the way it is accepted on query strings ("prop,dir").
func (o Order) String() string {
	return o.Property + "," + string(o.Direction)
}

// Pageable describes which page of results to read. Page is zero-based.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// Offset returns the number of rows to skip, saturating at math.MaxInt
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a larger result set
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Pageable      Pageable
}

// TotalPages returns the number of pages available at the current page size
func (p Page[T]) TotalPages() int {
	if p.Pageable.Size <= 0 {
		return 1
	}
	pages := int(p.TotalElements / int64(p.Pageable.Size))
	if p.TotalElements%int64(p.Pageable.Size) != 0 {
		pages++
	}
	return pages
}

// HasNext reports whether a page follows this one
func (p Page[T]) HasNext() bool {
	return p.Pageable.Page < p.TotalPages()-1
}

// HasPrevious reports whether a page precedes this one
func (p Page[T]) HasPrevious() bool {
	return p.Pageable.Page > 0
}

// orderByClause builds an ORDER BY clause from the pageable's sort, mapping
// properties onto columns. Results fall back to id order so pages are stable.
func orderByClause(sort []Order, columns map[string]string) (string, error) {
	if len(sort) == 0 {
		return "ORDER BY id ASC", nil
	}

	parts := make([]string, 0, len(sort)+1)
	sortsByID := false
	for _, o := range sort {
		column, ok := columns[o.Property]
		if !ok {
			return "", fmt.Errorf("%q: %w", o.Property, ErrInvalidSort)
		}
		dir := "ASC"
		if o.Direction == Desc {
			dir = "DESC"
		}
		if column == "id" {
			sortsByID = true
		}
		parts = append(parts, column+" "+dir)
	}
	if !sortsByID {
		parts = append(parts, "id ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
