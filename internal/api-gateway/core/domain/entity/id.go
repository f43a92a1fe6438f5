package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an identifier issued by the commerce platform. The platform emits
// numbers, browsers and other callers frequently send them back as strings,
// so both forms decode into the same value. Any other JSON value is kept as
// its raw text and left for the platform to reject.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("entity: invalid id %s: %w", b, err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*id = ID(b)
		return nil
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }
