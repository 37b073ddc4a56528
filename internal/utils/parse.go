package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile decodes the file at path into v. Keys that match no field are
// logged and otherwise ignored.
func DecodeTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// Table is a generic TOML table. Its getters report false for missing keys
// and for values of the wrong type, so a partly broken file can still be read
// key by key.
type Table map[string]any

// ReadTOMLTable decodes the file at path without a target struct.
func ReadTOMLTable(path string) (Table, error) {
	t := Table{}
	if _, err := toml.DecodeFile(path, (*map[string]any)(&t)); err != nil {
		return nil, err
	}
	return t, nil
}

func get[T any](t Table, key string) (T, bool) {
	v, ok := t[key].(T)
	return v, ok
}

// Section returns the sub-table name.
func (t Table) Section(name string) (Table, bool) {
	m, ok := get[map[string]any](t, name)
	return Table(m), ok
}

func (t Table) Str(key string) (string, bool) { return get[string](t, key) }

func (t Table) Bool(key string) (bool, bool) { return get[bool](t, key) }

// Int reads a TOML integer.
func (t Table) Int(key string) (int, bool) {
	n, ok := get[int64](t, key)
	return int(n), ok
}

// Float reads a TOML float; integers are accepted too.
func (t Table) Float(key string) (float64, bool) {
	switch v := t[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Ints reads an array of integers. Any other element type fails the whole key.
func (t Table) Ints(key string) ([]int, bool) {
	raw, ok := get[[]any](t, key)
	if !ok {
		return nil, false
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		n, ok := v.(int64)
		if !ok {
			return nil, false
		}
		out[i] = int(n)
	}
	return out, true
}
