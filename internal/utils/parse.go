package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes the TOML file at path into v.
func LoadTOMLFile(path string, v any) error {
	_, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("Config %s did not decode cleanly (%v), falling back to per-key recovery", path, err)
	}
	return err
}

// ParseTOMLWithRecovery decodes path into a generic table so the keys that are
// well typed can still be picked out one by one.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	table := map[string]any{}
	if _, err := toml.DecodeFile(path, &table); err != nil {
		log.Warnf("Nothing usable in %s: %v", path, err)
		return nil, err
	}
	return table, nil
}

// Lookup returns table[key] when it holds a T.
// Sub-tables come back as map[string]any.
func Lookup[T any](table map[string]any, key string) (T, bool) {
	v, ok := table[key].(T)
	return v, ok
}

// LookupInt is Lookup for TOML integers, which decode as int64.
func LookupInt(table map[string]any, key string) (int, bool) {
	v, ok := Lookup[int64](table, key)
	return int(v), ok
}
