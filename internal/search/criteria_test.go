package search

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchezegido/recipedia/internal/models"
)

func intp(n int) *int { return &n }

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    *Range
		wantErr bool
	}{
		{name: "empty", token: "", want: nil},
		{name: "closed", token: "2:4", want: &Range{Min: intp(2), Max: intp(4)}},
		{name: "lower only", token: "2:", want: &Range{Min: intp(2)}},
		{name: "upper only", token: ":4", want: &Range{Max: intp(4)}},
		{name: "exact", token: "3", want: &Range{Min: intp(3), Max: intp(3)}},
		{name: "spaces", token: " 1 : 5 ", want: &Range{Min: intp(1), Max: intp(5)}},
		{name: "non numeric", token: "a:b", wantErr: true},
		{name: "non numeric upper", token: "1:x", wantErr: true},
		{name: "non numeric exact", token: "many", wantErr: true},
		{name: "no bounds", token: ":", wantErr: true},
		{name: "inverted", token: "5:1", wantErr: true},
		{name: "two separators", token: "1:2:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("time:desc, name")
	require.NoError(t, err)
	assert.Equal(t, []Sort{{Column: "time", Desc: true}, {Column: "name"}}, got)

	got, err = ParseSort("created:ASC")
	require.NoError(t, err)
	assert.Equal(t, []Sort{{Column: "created_at"}}, got)

	_, err = ParseSort("calories:asc")
	assert.Error(t, err)

	_, err = ParseSort("name:sideways")
	assert.Error(t, err)

	_, err = ParseSort("name,name:desc")
	assert.Error(t, err)
}

func TestParsePage(t *testing.T) {
	n, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParsePage("-1")
	assert.Error(t, err)
	_, err = ParsePage("two")
	assert.Error(t, err)

	n, err = ParsePage(strconv.Itoa(MaxPage))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, Criteria{Page: n}.Offset(), 0)

	// 461168601842738791 * 20 wraps to a negative int64 offset
	_, err = ParsePage("461168601842738791")
	assert.ErrorContains(t, err, "must be at most")
}

func TestParse(t *testing.T) {
	owner := uuid.New()
	c, err := Parse(Params{
		Name:       " soup ",
		Difficulty: "easy",
		UserID:     owner.String(),
		Rations:    "2:4",
		Type:       "dessert",
		Ingredient: "salt",
		SortBy:     "time:desc",
		Page:       "1",
	})
	require.NoError(t, err)

	assert.Equal(t, "soup", c.Name)
	assert.Equal(t, models.DifficultyEasy, c.Difficulty)
	assert.Equal(t, owner, c.UserID)
	assert.Equal(t, &Range{Min: intp(2), Max: intp(4)}, c.Rations)
	assert.Nil(t, c.Time)
	assert.Equal(t, models.TypeDessert, c.Type)
	assert.Equal(t, "salt", c.Ingredient)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, PageSize, c.Offset())
	assert.False(t, c.Unfiltered())
}

func TestParseReportsEveryBadParameter(t *testing.T) {
	_, err := Parse(Params{
		Rations:    "a:b",
		Time:       "x",
		Difficulty: "impossible",
		UserID:     "not-an-id",
		SortBy:     "calories",
		Page:       "-2",
		Type:       "brunch",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 7)
	for _, field := range []string{"rations", "time", "difficulty", "userId", "sortBy", "page", "type"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Contains(t, err.Error(), "rations")
}

func TestParseEmptyIsUnfiltered(t *testing.T) {
	c, err := Parse(Params{Page: "2"})
	require.NoError(t, err)
	assert.True(t, c.Unfiltered())
	assert.Equal(t, 2, c.Page)
}

func TestSortFields(t *testing.T) {
	assert.Equal(t, []string{"created", "difficulty", "kitchen", "name", "rations", "time", "type"}, SortFields())
}
