package handlers

import (
	"net/http"
	"strconv"

	"github.com/streamhive/backend/internal/pipeline"
)

// pageFromQuery reads the page and limit query parameters. Absent or
// malformed values fall back to the defaults; out-of-range values are
// clamped by the pipeline package.
func pageFromQuery(r *http.Request) pipeline.Page {
	var page pipeline.Page
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Number = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		page.Limit = v
	}
	return pipeline.NormalizePage(page)
}
