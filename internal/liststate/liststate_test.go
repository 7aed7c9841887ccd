package liststate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListState_EmptyInputYieldsDefaults(t *testing.T) {
	state := ParseListState(url.Values{})

	assert.Equal(t, 1, state.Page)
	assert.Equal(t, DefaultPageSize, state.PageSize)
	assert.Equal(t, "newest", state.Sort)
	assert.Empty(t, state.Status)
	assert.Empty(t, state.Q)
	assert.False(t, state.HasBids)
	assert.False(t, state.Awarded)
	assert.Equal(t, Default(), state)
}

func TestParseListState_ReadsKnownParameters(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("pageSize", "50")
	values.Set("sort", "status")
	values.Set("status", "quoted")
	values.Set("q", "titanium bracket")
	values.Set("hasBids", "true")
	values.Set("awarded", "true")

	state := ParseListState(values)

	assert.Equal(t, ListState{
		Page:     3,
		PageSize: 50,
		Sort:     "status",
		Status:   "quoted",
		Q:        "titanium bracket",
		HasBids:  true,
		Awarded:  true,
	}, state)
}

func TestParseListState_MalformedValuesFallBack(t *testing.T) {
	values := url.Values{}
	values.Set("page", "zero")
	values.Set("pageSize", "-5")
	values.Set("sort", "cleverest")
	values.Set("status", "doomed")
	values.Set("hasBids", "yes")
	values.Set("awarded", "1")

	state := ParseListState(values)
	assert.Equal(t, Default(), state)
}

func TestParseListState_ClampsPageAndSize(t *testing.T) {
	values := url.Values{}
	values.Set("page", "0")
	values.Set("pageSize", "10000")

	state := ParseListState(values)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, MaxPageSize, state.PageSize)
}

func TestBuildListQuery_OmitsDefaults(t *testing.T) {
	assert.Empty(t, BuildListQuery(Default()))

	state := Default()
	state.Page = 2
	state.Status = "won"
	query := BuildListQuery(state)
	assert.Equal(t, "page=2&status=won", query)
}

func TestBuildListQuery_EncodesSearchTerm(t *testing.T) {
	state := Default()
	state.Q = "7075 aluminum & anodize"

	query := BuildListQuery(state)
	parsed, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "7075 aluminum & anodize", parsed.Get("q"))
}

func TestListState_RoundTrip(t *testing.T) {
	states := []ListState{
		Default(),
		{Page: 2, PageSize: DefaultPageSize, Sort: "newest"},
		{Page: 1, PageSize: 50, Sort: "oldest", Status: "approved"},
		{Page: 4, PageSize: 10, Sort: "title", Q: "impeller", HasBids: true},
		{Page: 1, PageSize: DefaultPageSize, Sort: "status", Awarded: true},
		{Page: 7, PageSize: MaxPageSize, Sort: "newest", Status: "won", Q: "gear housing", HasBids: true, Awarded: true},
	}

	for _, state := range states {
		query := BuildListQuery(state)
		values, err := url.ParseQuery(query)
		require.NoError(t, err)
		assert.Equal(t, state, ParseListState(values), "round trip changed state for %q", query)
	}
}

func TestListState_Offset(t *testing.T) {
	assert.Equal(t, 0, Default().Offset())
	assert.Equal(t, 40, ListState{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 90, ListState{Page: 10, PageSize: 10}.Offset())
}
