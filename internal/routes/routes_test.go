package routes

import (
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	records := []Record{
		{Name: "home", Path: "/"},
		{Name: 42, Path: "/bad"},
		{Path: "/nopath"},
	}

	valid, dropped := Filter(records)

	if len(valid) != 1 {
		t.Fatalf("expected 1 valid route, got %d", len(valid))
	}
	if valid[0].Name != "home" || valid[0].Path != "/" {
		t.Errorf("unexpected valid route %+v", valid[0])
	}
	if len(dropped) != 2 {
		t.Errorf("expected 2 dropped records, got %d", len(dropped))
	}
}

func TestFilterKeepsChildren(t *testing.T) {
	records := []Record{
		{Name: "parent", Path: "/p", Children: []Record{
			{Name: "a", Path: "/p/a"},
			{Name: "b", Path: "/p/b"},
		}},
	}

	valid, _ := Filter(records)
	if len(valid) != 1 {
		t.Fatalf("expected 1 valid route, got %d", len(valid))
	}
	if got := valid[0].ChildNames(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ChildNames() = %v, want [a b]", got)
	}
}

func TestChildNamesSkipsNonTextualNames(t *testing.T) {
	route := Route{Name: "p", Path: "/p", Children: []Record{
		{Name: "ok", Path: "/p/ok"},
		{Name: 1, Path: "/p/1"},
		{Path: "/p/none"},
	}}

	if got := route.ChildNames(); !reflect.DeepEqual(got, []string{"ok"}) {
		t.Errorf("ChildNames() = %v, want [ok]", got)
	}
}

func TestSortByName(t *testing.T) {
	rs := []Route{
		{Name: "zeta"},
		{Name: "alpha"},
		{Name: "mike"},
	}

	SortByName(rs)

	want := []string{"alpha", "mike", "zeta"}
	for i, name := range want {
		if rs[i].Name != name {
			t.Errorf("rs[%d].Name = %q, want %q", i, rs[i].Name, name)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	payload := []byte(`[
		{"name": "home", "path": "/"},
		{"name": 42, "path": "/bad"},
		{"name": "user", "path": "/users/:id", "children": [{"name": "profile", "path": "profile"}]}
	]`)

	table, err := DecodeJSON(payload)
	if err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table))
	}
	if table[0].Name != "home" {
		t.Errorf("table[0].Name = %v, want home", table[0].Name)
	}
	if _, ok := table[1].Name.(string); ok {
		t.Error("expected non-textual name to stay non-textual after decode")
	}
	if len(table[2].Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(table[2].Children))
	}
}

func TestDecodeJSONRejectsNonArray(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{"name": "home"}`)); err == nil {
		t.Error("expected error for non-array payload")
	}
}

func TestDecodeYAML(t *testing.T) {
	payload := []byte(`
- name: home
  path: /
- name: docs
  path: /docs/:slug+
  children:
    - name: section
      path: ":section"
`)

	table, err := DecodeYAML(payload)
	if err != nil {
		t.Fatalf("DecodeYAML failed: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 records, got %d", len(table))
	}
	if table[1].Path != "/docs/:slug+" {
		t.Errorf("table[1].Path = %v, want /docs/:slug+", table[1].Path)
	}
	if len(table[1].Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(table[1].Children))
	}
}
