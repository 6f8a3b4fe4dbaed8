package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

// Field is a nested field that can be selected on a node.
type Field string

const (
	UserItemCount     Field = "itemCount"
	UserItems         Field = "items"
	UserLists         Field = "lists"
	UserListCount     Field = "listCount"
	UserLastUpdatedBy Field = "lastUpdatedBy"

	ListItemsField Field = "items"
	ListItemCount  Field = "itemCount"
)

var userFieldOps = map[Field]auth.Operation{
	UserItemCount:     auth.OpUserItemCount,
	UserItems:         auth.OpUserItems,
	UserLists:         auth.OpUserLists,
	UserListCount:     auth.OpUserListCount,
	UserLastUpdatedBy: auth.OpUserLastUpdatedBy,
}

var listFieldOps = map[Field]auth.Operation{
	ListItemsField: auth.OpListItemsField,
	ListItemCount:  auth.OpListItemCount,
}

// Selection lists the nested fields requested on a node and the page applied
// to nested collections.
type Selection struct {
	Fields []Field
	Page   domain.Page
}

// Has reports whether f was selected.
func (s Selection) Has(f Field) bool {
	return lo.Contains(s.Fields, f)
}

// ParseUserSelection parses a comma separated field list for user nodes.
func ParseUserSelection(raw string, page domain.Page) (Selection, error) {
	return parseSelection(raw, page, userFieldOps)
}

// ParseListSelection parses a comma separated field list for list nodes.
func ParseListSelection(raw string, page domain.Page) (Selection, error) {
	return parseSelection(raw, page, listFieldOps)
}

func parseSelection(raw string, page domain.Page, known map[Field]auth.Operation) (Selection, error) {
	names := lo.Uniq(lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))
	fields := lo.Map(names, func(s string, _ int) Field { return Field(s) })

	unknown := lo.Filter(fields, func(f Field, _ int) bool {
		_, ok := known[f]
		return !ok
	})
	if len(unknown) > 0 {
		return Selection{}, fmt.Errorf("%w: unknown fields %v, expected one of %v",
			domain.ErrValidation, unknown, fieldNames(known))
	}
	return Selection{Fields: fields, Page: page.Normalize()}, nil
}

func fieldNames(known map[Field]auth.Operation) []string {
	names := lo.Map(lo.Keys(known), func(f Field, _ int) string { return string(f) })
	sort.Strings(names)
	return names
}
