package proto

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID is a caller-supplied identity. Clients send it as either a JSON
// number or a string; it is never validated, only recorded and echoed back
// in the form it arrived.
type UserID struct {
	value  string
	quoted bool
}

// StringID builds a UserID that marshals as a JSON string.
func StringID(s string) UserID {
	return UserID{value: s, quoted: true}
}

// NumberID builds a UserID that marshals as a JSON number.
func NumberID(n int64) UserID {
	return UserID{value: strconv.FormatInt(n, 10)}
}

// String returns the identity without JSON quoting.
func (u UserID) String() string {
	return u.value
}

// IsZero reports whether no identity has been recorded.
func (u UserID) IsZero() bool {
	return u.value == "" && !u.quoted
}

// UnmarshalJSON accepts a JSON string or number.
func (u *UserID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		u.value = s
		u.quoted = true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("userId must be a string or number: %w", err)
	}
	u.value = n.String()
	u.quoted = false
	return nil
}

// MarshalJSON re-emits the identity the way the client sent it.
func (u UserID) MarshalJSON() ([]byte, error) {
	if u.quoted {
		return json.Marshal(u.value)
	}
	if u.value == "" {
		// Never joined; keep the field a valid JSON value.
		return []byte("null"), nil
	}
	return []byte(u.value), nil
}
