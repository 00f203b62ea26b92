package controllers

import (
	"net/http"
	"strconv"
	"time"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100

	handlerTimeout = 10 * time.Second
)

// parsePagination reads page and page_size query parameters, clamping to
// sane bounds.
func parsePagination(r *http.Request) (page, pageSize int) {
	page = defaultPage
	pageSize = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			page = value
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			pageSize = value
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
