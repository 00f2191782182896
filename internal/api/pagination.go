package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/jbweber/homelab/stagerad/internal/repository"
)

// maxPageParam caps page and size query values so page arithmetic stays in range
const maxPageParam = math.MaxInt32

// PagingOptions bounds the page size accepted from clients
type PagingOptions struct {
	DefaultSize int
	MaxSize     int
}

// parsePageable reads page, size and sort query parameters. Missing or
// unparsable page and size values fall back to defaults. Sizes are clamped to
// MaxSize and both values to maxPageParam. Sort properties are validated by
// the store.
func (o PagingOptions) parsePageable(r *http.Request) repository.Pageable {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	if page > maxPageParam {
		page = maxPageParam
	}

	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size < 1 {
		size = o.DefaultSize
	}
	if o.MaxSize > 0 && size > o.MaxSize {
		size = o.MaxSize
	}
	if size > maxPageParam {
		size = maxPageParam
	}

	var sort []repository.Order
	for _, raw := range q["sort"] {
		sort = append(sort, parseSort(raw)...)
	}

	return repository.Pageable{Page: page, Size: size, Sort: sort}
}

// parseSort parses "prop[,prop...][,asc|desc]". A trailing direction applies
// to every property in the value.
func parseSort(raw string) []repository.Order {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	direction := repository.Asc
	switch strings.ToLower(parts[len(parts)-1]) {
	case "desc":
		direction = repository.Desc
		parts = parts[:len(parts)-1]
	case "asc":
		parts = parts[:len(parts)-1]
	}

	orders := make([]repository.Order, 0, len(parts))
	for _, p := range parts {
		orders = append(orders, repository.Order{Property: p, Direction: direction})
	}
	return orders
}
