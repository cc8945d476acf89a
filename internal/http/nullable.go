package http

import (
	"bytes"
	"encoding/json"

	"github.com/example/hr-directory/internal/application"
)

// nullableString decodes a PATCH field that may be absent, null or a string.
type nullableString struct {
	set   bool
	value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.value = nil
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.value = &value
	return nil
}

func (n nullableString) patch() application.NullableString {
	return application.NullableString{Set: n.set, Value: n.value}
}
