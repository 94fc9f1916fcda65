package echoapi

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination slices list results by page/limit query parameters.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func (p *Pagination) Bind(ctx echo.Context) {
	p.Page = defaultPage
	p.Limit = defaultLimit

	if v := ctx.QueryParam("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			p.Page = page
		}
	}
	if v := ctx.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			p.Limit = limit
			if p.Limit > maxLimit {
				p.Limit = maxLimit
			}
		}
	}
}

// Slice computes the [start, end) window for a list of `count` items and
// fills in the totals. A page past the end yields an empty window.
func (p *Pagination) Slice(count int) (start, end int) {
	p.Total = count
	p.TotalPages = int(math.Ceil(float64(count) / float64(p.Limit)))

	start = (p.Page - 1) * p.Limit
	if start > count {
		return count, count
	}
	end = start + p.Limit
	if end > count {
		end = count
	}
	return start, end
}
