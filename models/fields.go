package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NullableID is an optional reference to another row. Set records whether the
// key appeared in the payload at all, so a patch can tell "clear it" (null or
// "") apart from "leave it alone" (absent).
type NullableID struct {
	Set   bool
	Value *uuid.UUID
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("must be a UUID string or null")
	}
	if s == "" {
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a UUID string or null")
	}
	n.Value = &id
	return nil
}

func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value.String())
}

func (n NullableID) column() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

// OptionalList is a list field of a partial update.
//
// A present value that is not a JSON array (including null) is coerced to an
// empty list instead of being rejected; admin clients rely on this when they
// clear a list input. An array holding anything other than strings is still
// an error.
type OptionalList struct {
	Set   bool
	Items []string
}

func (l *OptionalList) UnmarshalJSON(data []byte) error {
	l.Set = true
	l.Items = []string{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}

	var items []string
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("must be an array of strings")
	}
	if items != nil {
		l.Items = items
	}
	return nil
}

func (l OptionalList) MarshalJSON() ([]byte, error) {
	return json.Marshal(nonNil(l.Items))
}

func nonNil(items []string) datatypes.JSONSlice[string] {
	if items == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](items)
}

func setString(cols map[string]any, column string, value *string) {
	if value != nil {
		cols[column] = *value
	}
}

func setList(cols map[string]any, column string, list OptionalList) {
	if list.Set {
		cols[column] = nonNil(list.Items)
	}
}
