// Package registry provides the flat name→user lookup table used to resolve
// recipe creators and comment authors.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"recipemd/internal/recipe"
)

// Registry maps display names to user records. It is loaded once per run and
// read-only afterwards.
type Registry struct {
	users map[string]recipe.User
}

// LoadUsers reads a users.json array and returns it in file order. Unlike
// Load, a missing file is an error here; the users build command wants to
// fail loudly.
func LoadUsers(path string) ([]recipe.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var users []recipe.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return users, nil
}

// Load builds a registry from a users.json array file. A missing file is not
// fatal: it degrades to an empty registry, and every lookup synthesizes a
// name-only record.
func Load(path string) (*Registry, error) {
	users, err := LoadUsers(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(nil), nil
		}
		return nil, err
	}
	return New(users), nil
}

// New builds a registry from a user list. Later duplicates win, matching the
// original map construction.
func New(users []recipe.User) *Registry {
	m := make(map[string]recipe.User, len(users))
	for _, u := range users {
		m[u.Name] = u
	}
	return &Registry{users: m}
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	return len(r.users)
}

// Lookup returns the record registered under name, if any.
func (r *Registry) Lookup(name string) (recipe.User, bool) {
	u, ok := r.users[name]
	return u, ok
}

// Resolve returns the registered record for name, or a name-only record when
// the registry has no match. It never fails, so every recipe stays emittable.
func (r *Registry) Resolve(name string) recipe.User {
	if u, ok := r.users[name]; ok {
		return u
	}
	return recipe.User{Name: name}
}

// ResolveRef upgrades a bare name reference to a full user record. Already
// resolved references pass through unchanged; nil stays nil. This is the one
// place the legacy string-or-record branch lives.
func (r *Registry) ResolveRef(ref *recipe.UserRef) *recipe.UserRef {
	if ref == nil || ref.Resolved() {
		return ref
	}
	return recipe.FullRef(r.Resolve(ref.Name))
}

// Map returns the name→user map serialized for the front-end.
func (r *Registry) Map() map[string]recipe.User {
	return r.users
}
