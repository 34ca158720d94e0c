package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrail/bootcamp-api/internal/domain/repository"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/bootcamps?"+rawQuery, nil)
	return c
}

func findFilter(filters []repository.Filter, field string) *repository.Filter {
	for i := range filters {
		if filters[i].Field == field {
			return &filters[i]
		}
	}
	return nil
}

func TestParseListParamsReservedKeys(t *testing.T) {
	c := ctxWithQuery(t, "sort=-created_at&page=2&limit=10&select=name,description")

	p := parseListParams(c)
	assert.Equal(t, "-created_at", p.Sort)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Empty(t, p.Filters, "reserved keys are not filters")
}

func TestParseListParamsOperators(t *testing.T) {
	c := ctxWithQuery(t, "tuition[lte]=10000&weeks[gte]=8&housing=true&careers[in]=Business,UI%2FUX")

	p := parseListParams(c)
	require.Len(t, p.Filters, 4)

	f := findFilter(p.Filters, "tuition")
	require.NotNil(t, f)
	assert.Equal(t, "lte", f.Op)
	assert.Equal(t, 10000.0, f.Value)

	f = findFilter(p.Filters, "weeks")
	require.NotNil(t, f)
	assert.Equal(t, "gte", f.Op)

	f = findFilter(p.Filters, "housing")
	require.NotNil(t, f)
	assert.Equal(t, "eq", f.Op)
	assert.Equal(t, true, f.Value)

	f = findFilter(p.Filters, "careers")
	require.NotNil(t, f)
	assert.Equal(t, "in", f.Op)
	assert.Equal(t, []string{"Business", "UI/UX"}, f.Value)
}

func TestProjectFieldsKeepsIDAndSelected(t *testing.T) {
	type row struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	data := []row{{ID: "1", Name: "Devworks", Description: "long text"}}

	out := projectFields(data, "name")
	list, ok := out.([]map[string]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0]["id"])
	assert.Equal(t, "Devworks", list[0]["name"])
	assert.NotContains(t, list[0], "description")
}

func TestProjectFieldsNoSelectPassesThrough(t *testing.T) {
	data := []string{"unchanged"}
	assert.Equal(t, data, projectFields(data, ""))
}

func TestPaginationFor(t *testing.T) {
	pg := paginationFor(repository.ListParams{Page: 2, Limit: 10}, 35)
	require.NotNil(t, pg)
	require.NotNil(t, pg.Next)
	require.NotNil(t, pg.Prev)
	assert.Equal(t, 3, pg.Next.Page)
	assert.Equal(t, 10, pg.Next.Limit)
	assert.Equal(t, 1, pg.Prev.Page)

	assert.Nil(t, paginationFor(repository.ListParams{}, 10))
}
