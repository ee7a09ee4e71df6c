package usecase

import (
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
)

// PageConfig bounds page sizes requested through the API.
type PageConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

func (c PageConfig) normalize(req pagination.Request) pagination.Request {
	if req.PerPage <= 0 {
		req.PerPage = c.DefaultPerPage
	}
	if req.PerPage <= 0 {
		req.PerPage = pagination.DefaultPerPage
	}
	return req.CapPerPage(c.MaxPerPage)
}
