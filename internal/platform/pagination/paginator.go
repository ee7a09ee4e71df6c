// Package pagination turns an ordered, filtered result set into one page plus
// the metadata a table view needs: prev/next links and a "showing X-Y of N"
// range.
package pagination

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPerPage = 15

	ParamPage    = "page"
	ParamPerPage = "per_page"

	// legacyResultsParam is dropped from generated links so old bookmarked
	// URLs keep resolving to the same page.
	legacyResultsParam = "results"
)

// Request is a normalized page request. Page is 1-based.
type Request struct {
	Page    int
	PerPage int
}

// ParseRequest reads page and per_page from query values. Missing,
// non-numeric, or non-positive values fall back to defaults; it never fails.
func ParseRequest(values url.Values, defaultPerPage int) Request {
	if defaultPerPage <= 0 {
		defaultPerPage = DefaultPerPage
	}

	return Request{
		Page:    positiveOr(values.Get(ParamPage), 1),
		PerPage: positiveOr(values.Get(ParamPerPage), defaultPerPage),
	}
}

// CapPerPage limits PerPage to max when max is positive.
func (r Request) CapPerPage(max int) Request {
	if max > 0 && r.PerPage > max {
		r.PerPage = max
	}
	return r
}

func (r Request) normalized() Request {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PerPage <= 0 {
		r.PerPage = DefaultPerPage
	}
	return r
}

func (r Request) Offset() int {
	return r.PerPage * (r.Page - 1)
}

func (r Request) Limit() int {
	return r.PerPage
}

// Window clamps the request against total. A page starting beyond the last
// record lands on the last page instead of returning an empty slice.
func Window(total int, req Request) Request {
	req = req.normalized()
	if total < 0 {
		total = 0
	}
	if req.Page > 1 && (req.Page-1)*req.PerPage >= total {
		req.Page = lastPage(total, req.PerPage)
	}
	return req
}

func lastPage(total, perPage int) int {
	page := 1 + total/perPage
	if total > 0 && total%perPage == 0 {
		page--
	}
	return page
}

// Source supplies a count and offset/limit slices of an ordered collection.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// SourceFuncs adapts two closures to Source.
type SourceFuncs[T any] struct {
	CountFunc func(ctx context.Context) (int, error)
	SliceFunc func(ctx context.Context, offset, limit int) ([]T, error)
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int, error) {
	return s.CountFunc(ctx)
}

func (s SourceFuncs[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	return s.SliceFunc(ctx, offset, limit)
}

// Fetch counts the source, clamps the request, and loads exactly one slice.
func Fetch[T any](ctx context.Context, src Source[T], req Request, basePath string, query url.Values) (Page[T], error) {
	total, err := src.Count(ctx)
	if err != nil {
		return Page[T]{}, fmt.Errorf("count page source: %w", err)
	}

	window := Window(total, req)
	items := []T{}
	if total > 0 {
		items, err = src.Slice(ctx, window.Offset(), window.Limit())
		if err != nil {
			return Page[T]{}, fmt.Errorf("slice page source: %w", err)
		}
	}

	return NewPage(items, total, window, basePath, query), nil
}

// Page is one rendered slice of a result set.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PerPage  int
	BasePath string
	Query    url.Values
}

// NewPage builds a page from already-sliced items. req is clamped against
// total so the metadata stays consistent with Window.
func NewPage[T any](items []T, total int, req Request, basePath string, query url.Values) Page[T] {
	window := Window(total, req)
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:    items,
		Total:    total,
		Page:     window.Page,
		PerPage:  window.PerPage,
		BasePath: basePath,
		Query:    cloneValues(query),
	}
}

func (p Page[T]) Request() Request {
	return Request{Page: p.Page, PerPage: p.PerPage}
}

func (p Page[T]) HasMultiplePages() bool {
	return p.Total > p.PerPage
}

func (p Page[T]) HasNextPage() bool {
	return p.Page*p.PerPage < p.Total
}

func (p Page[T]) HasPrevPage() bool {
	return p.Page > 1
}

// Range renders "min" for a single row and "min-max" otherwise. An empty
// page has no range.
func (p Page[T]) Range() string {
	if p.Total <= 0 {
		return ""
	}
	lo := 1 + p.PerPage*(p.Page-1)
	hi := min(p.PerPage*p.Page, p.Total)
	if hi <= lo {
		return strconv.Itoa(lo)
	}
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}

// URL links to page n with the current query preserved.
func (p Page[T]) URL(n int) string {
	values := cloneValues(p.Query)
	values.Del(legacyResultsParam)
	values.Set(ParamPage, strconv.Itoa(n))

	base := p.BasePath
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return base + "?" + values.Encode()
}

func (p Page[T]) NextURL() string {
	if !p.HasNextPage() {
		return ""
	}
	return p.URL(p.Page + 1)
}

func (p Page[T]) PrevURL() string {
	if !p.HasPrevPage() {
		return ""
	}
	return p.URL(p.Page - 1)
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
