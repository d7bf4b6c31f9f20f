package api

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

const maxPageSize = 100

// pageParams is the page-number pagination requested by a client
type pageParams struct {
	Page  int
	Limit int
}

func (p pageParams) offset() int {
	return (p.Page - 1) * p.Limit
}

func parsePage(c *gin.Context, defaultLimit int) (pageParams, error) {
	p := pageParams{Page: 1, Limit: defaultLimit}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, service.NotFoundError("invalid page")
		}
		p.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err == nil && limit > 0 {
			p.Limit = min(limit, maxPageSize)
		}
	}
	return p, nil
}

// newPage wraps results in the envelope with absolute next and previous
// links that keep every other query parameter
func newPage[T any](c *gin.Context, p pageParams, count int64, results []T) types.Page[T] {
	page := types.Page[T]{Count: count, Results: results}
	if page.Results == nil {
		page.Results = []T{}
	}
	if int64(p.Page*p.Limit) < count {
		next := pageURL(c, p.Page+1)
		page.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(c, p.Page-1)
		page.Previous = &prev
	}
	return page
}

func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	query := c.Request.URL.Query()
	if page == 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// idParam parses the :id path segment. A malformed id cannot name an
// existing row, so it is a NotFound.
func idParam(c *gin.Context, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, service.NotFoundError(what + " not found")
	}
	return uint(id), nil
}

// flagParam reads boolean filters such as ?is_favorited=1
func flagParam(c *gin.Context, name string) bool {
	switch c.Query(name) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}

// bindJSON decodes the body, reporting malformed input as a validation error
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return service.ValidationError("", err.Error())
	}
	return nil
}
