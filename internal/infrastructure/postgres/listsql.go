package postgres

import (
	"fmt"
	"strings"

	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// buildWhere renders whitelisted filters into a WHERE fragment. cols
// maps the API field name onto the column expression; unknown fields
// and operators are rejected as validation errors so they can never
// reach the SQL layer.
func buildWhere(filters []repository.Filter, cols map[string]string, args []any) (string, []any, error) {
	var conds []string
	for _, f := range filters {
		col, ok := cols[f.Field]
		if !ok {
			return "", nil, apperr.New(apperr.Validation, "cannot filter on field %q", f.Field)
		}
		var op string
		switch f.Op {
		case "", "eq":
			op = "="
		case "gt":
			op = ">"
		case "gte":
			op = ">="
		case "lt":
			op = "<"
		case "lte":
			op = "<="
		case "in":
			args = append(args, f.Value)
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", col, len(args)))
			continue
		default:
			return "", nil, apperr.New(apperr.Validation, "unknown filter operator %q", f.Op)
		}
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf("%s %s $%d", col, op, len(args)))
	}
	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// buildOrder renders a sort expression like "-created_at,name" into an
// ORDER BY fragment against whitelisted columns. def is used when no
// sort is requested.
func buildOrder(sort string, cols map[string]string, def string) (string, error) {
	if sort == "" {
		return " ORDER BY " + def, nil
	}
	var parts []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		col, ok := cols[field]
		if !ok {
			return "", apperr.New(apperr.Validation, "cannot sort on field %q", field)
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return " ORDER BY " + def, nil
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// pageClause appends LIMIT/OFFSET for the requested page.
func pageClause(p repository.ListParams, args []any) (string, []any) {
	args = append(args, p.PageSize())
	clause := fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, p.Offset())
	clause += fmt.Sprintf(" OFFSET $%d", len(args))
	return clause, args
}
