package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkove/routegen/internal/diag"
	"github.com/mkove/routegen/internal/routes"
)

func writeTable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFileLoadsYAMLandJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "routes.yaml")
	writeTable(t, yamlPath, "- name: home\n  path: /\n")
	jsonPath := filepath.Join(dir, "routes.json")
	writeTable(t, jsonPath, `[{"name": "home", "path": "/"}]`)

	for _, path := range []string{yamlPath, jsonPath} {
		src := NewFile(path, diag.Discard())
		table, err := src.Load()
		if err != nil {
			t.Fatalf("load(%s) failed: %v", path, err)
		}
		if len(table) != 1 || table[0].Name != "home" {
			t.Errorf("load(%s) = %+v, want single home record", path, table)
		}
	}
}

func TestFileDeliversOnStartAndOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	writeTable(t, path, "- name: home\n  path: /\n")

	src := NewFile(path, diag.Discard())
	deliveries := make(chan []routes.Record, 8)
	src.Subscribe(func(table []routes.Record) {
		deliveries <- table
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- src.Start(ctx) }()

	select {
	case table := <-deliveries:
		if len(table) != 1 {
			t.Fatalf("initial delivery has %d records, want 1", len(table))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial delivery")
	}

	// Give the watcher time to register before mutating the file.
	time.Sleep(100 * time.Millisecond)
	writeTable(t, path, "- name: home\n  path: /\n- name: about\n  path: /about\n")

	select {
	case table := <-deliveries:
		if len(table) != 2 {
			t.Fatalf("change delivery has %d records, want 2", len(table))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no delivery after file change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not stop on context cancellation")
	}
}

func TestFileExcludedPathDoesNotDeliver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	writeTable(t, path, "- name: home\n  path: /\n")

	src := NewFile(path, diag.Discard())
	deliveries := make(chan []routes.Record, 8)
	src.Subscribe(func(table []routes.Record) {
		deliveries <- table
	})
	if err := src.Exclude(path); err != nil {
		t.Fatalf("Exclude failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go src.Start(ctx)

	// Initial delivery happens regardless of exclusions.
	select {
	case <-deliveries:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial delivery")
	}

	time.Sleep(100 * time.Millisecond)
	writeTable(t, path, "- name: about\n  path: /about\n")

	select {
	case <-deliveries:
		t.Error("excluded path still triggered a delivery")
	case <-time.After(700 * time.Millisecond):
	}
}

func TestFileLoadErrorIsReportedNotFatal(t *testing.T) {
	src := NewFile(filepath.Join(t.TempDir(), "missing.yaml"), diag.Discard())
	src.Subscribe(func(table []routes.Record) {
		t.Error("missing file should not deliver a table")
	})
	src.deliver()
}
