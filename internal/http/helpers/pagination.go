package helpers

import (
	"net/http"
	"strconv"
)

// Defaults de paginación (mismos que el API original).
const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
)

// PageParams parsea page/limit del query string.
// Ausencia o valor no parseable caen a los defaults 1/10; la validación de
// rango (clamping) es responsabilidad del service.
func PageParams(r *http.Request) (page, limit int64) {
	page = parseOr(r.URL.Query().Get("page"), DefaultPage)
	limit = parseOr(r.URL.Query().Get("limit"), DefaultLimit)
	return page, limit
}

func parseOr(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
