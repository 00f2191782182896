package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jbweber/homelab/stagerad/internal/repository"
)

// HeaderUtil writes alert headers prefixed with the application name
type HeaderUtil struct {
	appName string
}

// NewHeaderUtil creates alert header helpers for appName
func NewHeaderUtil(appName string) *HeaderUtil {
	return &HeaderUtil{appName: appName}
}

// Alert sets the alert message and its parameter
func (h *HeaderUtil) Alert(w http.ResponseWriter, message, param string) {
	w.Header().Set("X-"+h.appName+"-alert", message)
	w.Header().Set("X-"+h.appName+"-params", url.QueryEscape(param))
}

// EntityCreationAlert reports a created entity
func (h *HeaderUtil) EntityCreationAlert(w http.ResponseWriter, entityName, param string) {
	h.Alert(w, h.appName+"."+entityName+".created", param)
}

// EntityUpdateAlert reports an updated entity
func (h *HeaderUtil) EntityUpdateAlert(w http.ResponseWriter, entityName, param string) {
	h.Alert(w, h.appName+"."+entityName+".updated", param)
}

// EntityDeletionAlert reports a deleted entity
func (h *HeaderUtil) EntityDeletionAlert(w http.ResponseWriter, entityName, param string) {
	h.Alert(w, h.appName+"."+entityName+".deleted", param)
}

// FailureAlert reports a rejected request
func (h *HeaderUtil) FailureAlert(w http.ResponseWriter, entityName, errorKey string) {
	w.Header().Set("X-"+h.appName+"-error", "error."+errorKey)
	w.Header().Set("X-"+h.appName+"-params", entityName)
}

// setPaginationHeaders writes X-Total-Count and an RFC 5988 Link header for page
func setPaginationHeaders[T any](w http.ResponseWriter, u *url.URL, page repository.Page[T]) {
	number := page.Pageable.Page
	size := page.Pageable.Size
	totalPages := page.TotalPages()

	var links []string
	if page.HasNext() {
		links = append(links, pageLink(u, number+1, size, "next"))
	}
	if page.HasPrevious() {
		links = append(links, pageLink(u, number-1, size, "prev"))
	}
	last := 0
	if totalPages > 0 {
		last = totalPages - 1
	}
	links = append(links, pageLink(u, last, size, "last"), pageLink(u, 0, size, "first"))

	w.Header().Set("X-Total-Count", strconv.FormatInt(page.TotalElements, 10))
	w.Header().Set("Link", strings.Join(links, ","))
}

// pageLink renders one Link entry, keeping the request's other query parameters
func pageLink(u *url.URL, page, size int, rel string) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	target := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return "<" + target.String() + `>; rel="` + rel + `"`
}
