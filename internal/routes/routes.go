// Package routes models the route table delivered by a route table source
// and its validation into renderable routes.
package routes

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Record is one route as delivered by a source. Name and Path stay untyped
// until Filter validates them: payloads arrive from a dev client and
// frequently carry partial or malformed records.
type Record struct {
	Name     any      `json:"name" yaml:"name"`
	Path     any      `json:"path" yaml:"path"`
	Children []Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// Route is a validated record ready for rendering.
type Route struct {
	Name     string
	Path     string
	Children []Record
}

// DecodeJSON parses a route table payload as delivered over the live-update
// channel.
func DecodeJSON(data []byte) ([]Record, error) {
	var table []Record
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// DecodeYAML parses a route table file.
func DecodeYAML(data []byte) ([]Record, error) {
	var table []Record
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// Filter splits records into valid routes and dropped records. A record is
// valid when both name and path are textual. Dropping is non-fatal; callers
// report each dropped record and continue with the rest of the batch.
func Filter(records []Record) (valid []Route, dropped []Record) {
	for _, rec := range records {
		name, nameOK := rec.Name.(string)
		path, pathOK := rec.Path.(string)
		if !nameOK || !pathOK {
			dropped = append(dropped, rec)
			continue
		}
		valid = append(valid, Route{Name: name, Path: path, Children: rec.Children})
	}
	return valid, dropped
}

// SortByName orders routes by locale-aware comparison of their names so the
// emitted file is deterministic regardless of delivery order.
func SortByName(rs []Route) {
	c := collate.New(language.Und)
	sort.SliceStable(rs, func(i, j int) bool {
		return c.CompareString(rs[i].Name, rs[j].Name) < 0
	})
}

// ChildNames returns the textual names of a route's direct children, in
// order. Grandchildren are not recursed into; the children union is one
// level deep.
func (r Route) ChildNames() []string {
	var names []string
	for _, child := range r.Children {
		if name, ok := child.Name.(string); ok {
			names = append(names, name)
		}
	}
	return names
}
