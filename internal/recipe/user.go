package recipe

import (
	"bytes"
	"encoding/json"
)

// User is one entry of the user registry.
type User struct {
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// UserRef points at a user either by bare name (legacy sources) or by a full
// User record. It marshals back to whichever form it holds, so legacy JSON
// round-trips unchanged until the builder resolves it.
type UserRef struct {
	Name string
	User *User
}

// NameRef returns a bare name reference.
func NameRef(name string) *UserRef {
	return &UserRef{Name: name}
}

// FullRef returns a reference carrying a complete user record.
func FullRef(u User) *UserRef {
	return &UserRef{Name: u.Name, User: &u}
}

// Resolved reports whether the reference carries a full user record.
func (r *UserRef) Resolved() bool {
	return r != nil && r.User != nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.Name)
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			return err
		}
		r.Name = u.Name
		r.User = &u
		return nil
	}
	return json.Unmarshal(data, &r.Name)
}
