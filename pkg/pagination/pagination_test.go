package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLastPage(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, LastPage(c.total, c.limit), "total=%d limit=%d", c.total, c.limit)
	}
}

func TestParamsNormalize(t *testing.T) {
	p := Params{}.Normalize()
	require.Equal(t, DefaultPage, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)

	p = Params{Page: 3, Limit: 1000}.Normalize()
	require.Equal(t, 3, p.Page)
	require.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	require.Equal(t, 10, Params{Page: 2, Limit: 10}.Offset())
	require.Equal(t, 0, Params{Page: -4, Limit: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage[string](nil, 21, Params{Page: 2, Limit: 10})
	require.NotNil(t, page.List)
	require.Empty(t, page.List)
	require.Equal(t, Meta{Total: 21, Page: 2, LastPage: 3}, page.Meta)
}
