package graph

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON writes the user followed by every selected field. A selected
// collection with no rows is written as [] and an unresolved reference as null.
func (n UserNode) MarshalJSON() ([]byte, error) {
	return encodeNode(n.User, n.selected, func(f Field) any {
		switch f {
		case UserItemCount:
			return n.ItemCount
		case UserItems:
			return orEmpty(n.Items)
		case UserLists:
			return orEmpty(n.Lists)
		case UserListCount:
			return n.ListCount
		case UserLastUpdatedBy:
			return n.LastUpdatedBy
		}
		return nil
	})
}

// MarshalJSON writes the list followed by every selected field.
func (n ListNode) MarshalJSON() ([]byte, error) {
	return encodeNode(n.List, n.selected, func(f Field) any {
		switch f {
		case ListItemsField:
			return orEmpty(n.Items)
		case ListItemCount:
			return n.ItemCount
		}
		return nil
	})
}

func encodeNode(base any, fields []Field, value func(Field) any) ([]byte, error) {
	raw, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 || len(raw) < 2 || raw[0] != '{' {
		return raw, nil
	}

	var buf bytes.Buffer
	buf.Write(raw[:len(raw)-1])
	empty := len(bytes.TrimSpace(raw[1:len(raw)-1])) == 0
	for i, f := range fields {
		if i > 0 || !empty {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(f))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(value(f))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
