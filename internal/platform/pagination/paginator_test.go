package pagination

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Request
	}{
		{name: "absent", query: "", want: Request{Page: 1, PerPage: 15}},
		{name: "non numeric", query: "page=abc&per_page=xx", want: Request{Page: 1, PerPage: 15}},
		{name: "zero and negative", query: "page=0&per_page=-4", want: Request{Page: 1, PerPage: 15}},
		{name: "valid", query: "page=3&per_page=50", want: Request{Page: 3, PerPage: 50}},
		{name: "whitespace", query: "page=+2+", want: Request{Page: 2, PerPage: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseRequest(values, DefaultPerPage))
		})
	}
}

func TestParseRequest_NonPositiveDefaultFallsBack(t *testing.T) {
	got := ParseRequest(url.Values{}, 0)
	assert.Equal(t, DefaultPerPage, got.PerPage)
}

func TestWindow_ClampsPastLastPage(t *testing.T) {
	got := Window(100, Request{Page: 8, PerPage: 15})
	assert.Equal(t, 7, got.Page)
	assert.Equal(t, 90, got.Offset())
	assert.Equal(t, 15, got.Limit())
}

func TestWindow_ExactMultipleLandsOnLastPopulatedPage(t *testing.T) {
	got := Window(30, Request{Page: 5, PerPage: 15})
	assert.Equal(t, 2, got.Page)
}

func TestWindow_EmptyTotal(t *testing.T) {
	got := Window(0, Request{Page: 4, PerPage: 15})
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.Offset())
}

func TestPage_EmptyHasNoRange(t *testing.T) {
	page := NewPage([]string{}, 0, Request{Page: 3, PerPage: 15}, "/v1/players", nil)

	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Range())
	assert.False(t, page.HasNextPage())
}

func TestWindow_InRangeUntouched(t *testing.T) {
	got := Window(100, Request{Page: 7, PerPage: 15})
	assert.Equal(t, 7, got.Page)
}

func TestPage_SecondOfTwo(t *testing.T) {
	page := NewPage(make([]int, 15), 30, Request{Page: 2, PerPage: 15}, "/v1/players", nil)

	assert.Equal(t, "16-30", page.Range())
	assert.False(t, page.HasNextPage())
	assert.True(t, page.HasPrevPage())
	assert.True(t, page.HasMultiplePages())
	assert.Empty(t, page.NextURL())
}

func TestPage_SingleItemRange(t *testing.T) {
	page := NewPage([]string{"only"}, 1, Request{Page: 1, PerPage: 15}, "/v1/players", nil)

	assert.Equal(t, "1", page.Range())
	assert.False(t, page.HasMultiplePages())
	assert.False(t, page.HasNextPage())
	assert.False(t, page.HasPrevPage())
}

func TestPage_LinksReplacePageAndDropResults(t *testing.T) {
	query := url.Values{
		"federation": {"GER"},
		"page":       {"2"},
		"results":    {"50"},
	}
	page := NewPage(make([]int, 15), 100, Request{Page: 2, PerPage: 15}, "/v1/players?stale=1", query)

	assert.Equal(t, "/v1/players?federation=GER&page=3", page.NextURL())
	assert.Equal(t, "/v1/players?federation=GER&page=1", page.PrevURL())

	// the page keeps its own copy of the query
	query.Set("federation", "NED")
	assert.Equal(t, "/v1/players?federation=GER&page=4", page.URL(4))
}

type sliceSource struct {
	items      []int
	countErr   error
	sliceCalls int
	lastOffset int
	lastLimit  int
}

func (s *sliceSource) Count(context.Context) (int, error) {
	return len(s.items), s.countErr
}

func (s *sliceSource) Slice(_ context.Context, offset, limit int) ([]int, error) {
	s.sliceCalls++
	s.lastOffset, s.lastLimit = offset, limit
	end := min(offset+limit, len(s.items))
	return s.items[offset:end], nil
}

func TestFetch_UsesClampedOffset(t *testing.T) {
	src := &sliceSource{items: make([]int, 100)}
	for i := range src.items {
		src.items[i] = i + 1
	}

	page, err := Fetch[int](context.Background(), src, Request{Page: 8, PerPage: 15}, "/v1/players", nil)
	require.NoError(t, err)

	assert.Equal(t, 7, page.Page)
	assert.Equal(t, 90, src.lastOffset)
	assert.Equal(t, 15, src.lastLimit)
	assert.Equal(t, []int{91, 92, 93, 94, 95, 96, 97, 98, 99, 100}, page.Items)
	assert.Equal(t, "91-100", page.Range())
}

func TestFetch_EmptySourceSkipsSlice(t *testing.T) {
	src := &sliceSource{}

	page, err := Fetch[int](context.Background(), src, Request{Page: 3, PerPage: 15}, "/v1/players", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, src.sliceCalls)
	assert.Equal(t, 1, page.Page)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestFetch_PropagatesCountError(t *testing.T) {
	boom := errors.New("db down")
	src := &sliceSource{countErr: boom}

	_, err := Fetch[int](context.Background(), src, Request{Page: 1, PerPage: 15}, "/", nil)
	require.ErrorIs(t, err, boom)
}

func TestSourceFuncs(t *testing.T) {
	src := SourceFuncs[string]{
		CountFunc: func(context.Context) (int, error) { return 2, nil },
		SliceFunc: func(_ context.Context, offset, limit int) ([]string, error) {
			return []string{"a", "b"}[offset:min(offset+limit, 2)], nil
		},
	}

	page, err := Fetch[string](context.Background(), src, Request{Page: 1, PerPage: 1}, "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, page.Items)
	assert.Equal(t, "/x?page=2", page.NextURL())
}
