// Package colo maps data center airport codes to display metadata.
package colo

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// UnknownRegion labels records whose row carried no region code at all.
const UnknownRegion = "未知地区"

type Info struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// Table is the loaded code mapping. Build it once at startup; lookups after
// that never mutate it.
type Table struct {
	codes map[string]Info
}

// Builtin returns a table with the shipped mapping.
func Builtin() *Table {
	codes := make(map[string]Info, len(builtin))
	for k, v := range builtin {
		codes[k] = v
	}
	return &Table{codes: codes}
}

func (t *Table) Lookup(code string) (Info, bool) {
	info, ok := t.codes[code]
	return info, ok
}

// DisplayName resolves the human name for a code. Codes missing from the
// table pass through as their own display name; an empty code means the
// measurement tool could not identify the location.
func (t *Table) DisplayName(code string) string {
	if code == "" {
		return UnknownRegion
	}
	if info, ok := t.codes[code]; ok {
		return info.Name
	}
	return code
}

// Describe returns "name (country)" for listings, falling back like
// DisplayName for unknown codes.
func (t *Table) Describe(code string) string {
	if info, ok := t.codes[code]; ok {
		return fmt.Sprintf("%s (%s)", info.Name, info.Country)
	}
	return t.DisplayName(code)
}

// Codes returns all known codes in stable sorted order.
func (t *Table) Codes() []string {
	out := make([]string, 0, len(t.codes))
	for code := range t.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// MergeFile overlays a local JSON mapping on top of the table. A missing
// file is not an error; the built-in data simply stands.
func (t *Table) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read airport codes: %w", err)
	}
	var overlay map[string]Info
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse airport codes: %w", err)
	}
	for code, info := range overlay {
		t.codes[code] = info
	}
	return nil
}

// SaveFile writes the current table as JSON for offline editing.
func (t *Table) SaveFile(path string) error {
	data, err := json.MarshalIndent(t.codes, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
