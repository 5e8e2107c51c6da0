// Package prefs stores last-used parameter values keyed by an owner identity and a name.
package prefs

import (
	"fmt"
	"strconv"
)

// Store is the typed view parameters persist through. Getters return def when the key
// is absent; an unparsable stored value returns def and an error.
type Store interface {
	Bool(owner, key string, def bool) (bool, error)
	Int(owner, key string, def int) (int, error)
	Float(owner, key string, def float64) (float64, error)
	String(owner, key string, def string) (string, error)

	PutBool(owner, key string, v bool) error
	PutInt(owner, key string, v int) error
	PutFloat(owner, key string, v float64) error
	PutString(owner, key string, v string) error
}

// Backend is raw string storage.
type Backend interface {
	Get(owner, key string) (value string, ok bool, err error)
	Put(owner, key, value string) error
}

type typed struct {
	b Backend
}

// New wraps a backend in the typed Store API.
func New(b Backend) Store {
	return typed{b: b}
}

func (t typed) Bool(owner, key string, def bool) (bool, error) {
	return get(t.b, owner, key, def, strconv.ParseBool)
}

func (t typed) Int(owner, key string, def int) (int, error) {
	return get(t.b, owner, key, def, strconv.Atoi)
}

func (t typed) Float(owner, key string, def float64) (float64, error) {
	return get(t.b, owner, key, def, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func (t typed) String(owner, key string, def string) (string, error) {
	return get(t.b, owner, key, def, func(s string) (string, error) { return s, nil })
}

func (t typed) PutBool(owner, key string, v bool) error {
	return t.b.Put(owner, key, strconv.FormatBool(v))
}

func (t typed) PutInt(owner, key string, v int) error {
	return t.b.Put(owner, key, strconv.Itoa(v))
}

func (t typed) PutFloat(owner, key string, v float64) error {
	return t.b.Put(owner, key, strconv.FormatFloat(v, 'g', -1, 64))
}

func (t typed) PutString(owner, key string, v string) error {
	return t.b.Put(owner, key, v)
}

func get[T any](b Backend, owner, key string, def T, parse func(string) (T, error)) (T, error) {
	raw, ok, err := b.Get(owner, key)
	if err != nil {
		return def, fmt.Errorf("reading %s/%s: %w", owner, key, err)
	}
	if !ok {
		return def, nil
	}
	v, err := parse(raw)
	if err != nil {
		return def, fmt.Errorf("parsing %s/%s: %w", owner, key, err)
	}
	return v, nil
}
