package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/response"
)

// Query keys with reserved meaning on collection endpoints. Everything
// else is treated as a field filter.
var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// parseListParams turns ?field=v, ?field[op]=v, sort, page and limit
// into repository list parameters. Unknown fields are passed through;
// the store layer whitelists the columns it will actually filter on.
func parseListParams(c *gin.Context) repository.ListParams {
	p := repository.ListParams{
		Sort: c.Query("sort"),
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		p.Limit = v
	}

	for key, vals := range c.Request.URL.Query() {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}
		field, op := splitFilterKey(key)
		p.Filters = append(p.Filters, repository.Filter{
			Field: field,
			Op:    op,
			Value: coerceValue(op, vals[0]),
		})
	}
	return p
}

// paginationFor computes the envelope pagination block from the parsed
// list params and the collection total.
func paginationFor(p repository.ListParams, total int) *response.Pagination {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return response.NewPagination(page, p.PageSize(), total)
}

// splitFilterKey parses "tuition[lte]" into ("tuition", "lte"); a bare
// key is an equality filter.
func splitFilterKey(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open > 0 && strings.HasSuffix(key, "]") {
		return key[:open], key[open+1 : len(key)-1]
	}
	return key, "eq"
}

func coerceValue(op, raw string) any {
	if op == "in" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// projectFields applies the ?select=a,b,c projection to an
// already-serializable value. The id field always survives.
func projectFields(data any, selectParam string) any {
	if selectParam == "" {
		return data
	}
	keep := map[string]bool{"id": true}
	for _, f := range strings.Split(selectParam, ",") {
		if f = strings.TrimSpace(f); f != "" {
			keep[f] = true
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}

	prune := func(m map[string]any) {
		for k := range m {
			if !keep[k] {
				delete(m, k)
			}
		}
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, m := range list {
			prune(m)
		}
		return list
	}
	var one map[string]any
	if err := json.Unmarshal(raw, &one); err == nil {
		prune(one)
		return one
	}
	return data
}
