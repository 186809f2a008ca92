// Package emitter renders the typed route declaration file and owns the
// idempotent-write protocol that keeps redundant writes (and the downstream
// file-watch triggers they would cause) from happening.
package emitter

import (
	"bytes"
	"context"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/mkove/routegen/internal/diag"
	"github.com/mkove/routegen/internal/inference"
	"github.com/mkove/routegen/internal/routes"
)

// FileName is the fixed name of the generated declaration file.
const FileName = "typed-router.d.ts"

// Excluder asks the file-watching subsystem to stop tracking a path, so a
// write to the generated file does not trigger another generation round.
// Implementations are best effort; the emitter ignores failures.
type Excluder interface {
	Exclude(path string) error
}

// Emitter turns a delivered route table into the declaration file.
type Emitter struct {
	fs       afs.Service
	root     string
	dir      string
	reporter *diag.Reporter
	excluder Excluder
	cache    *inference.Cache
}

// New creates an emitter writing to {root}/{dir}/typed-router.d.ts. An empty
// dir means the root itself.
func New(fs afs.Service, root, dir string, reporter *diag.Reporter) *Emitter {
	return &Emitter{
		fs:       fs,
		root:     root,
		dir:      dir,
		reporter: reporter,
		cache:    inference.NewCache(0),
	}
}

// SetExcluder registers the watch-exclusion target. Optional.
func (e *Emitter) SetExcluder(excluder Excluder) {
	e.excluder = excluder
}

// OutputURL returns the resolved location of the declaration file.
func (e *Emitter) OutputURL() string {
	base := e.root
	if e.dir != "" {
		base = url.Join(base, e.dir)
	}
	return url.Join(base, FileName)
}

// Generate runs the full pipeline for one route table delivery: filter,
// sort, render, compare, write. It never returns an error; failures are
// reported and the round is abandoned, leaving any previously written file
// in place until the next delivery. The return value reports whether this
// round actually wrote the file, so callers can keep skipped rounds from
// triggering anything downstream.
func (e *Emitter) Generate(ctx context.Context, table []routes.Record) bool {
	valid, dropped := routes.Filter(table)
	for _, rec := range dropped {
		e.reporter.Warnf("skipping route with invalid name or path: name=%v path=%v", rec.Name, rec.Path)
	}
	routes.SortByName(valid)

	content := e.Render(valid)
	return e.write(ctx, []byte(content), len(valid))
}

// Render produces the complete declaration file text for an already
// filtered and sorted route list.
func (e *Emitter) Render(rs []routes.Route) string {
	var b strings.Builder
	b.WriteString(header)
	for _, r := range rs {
		e.renderRoute(&b, r)
	}
	b.WriteString(footer)
	return b.String()
}

func (e *Emitter) renderRoute(b *strings.Builder, r routes.Route) {
	types := e.cache.Infer(r.Path)
	name := escapeQuoted(r.Name)
	b.WriteString("    '")
	b.WriteString(name)
	b.WriteString("': RouteRecordInfo<'")
	b.WriteString(name)
	b.WriteString("', '")
	b.WriteString(escapeQuoted(r.Path))
	b.WriteString("', ")
	b.WriteString(types.Raw)
	b.WriteString(", ")
	b.WriteString(types.Normalized)
	b.WriteString(", ")
	b.WriteString(childrenUnion(r))
	b.WriteString(">,\n")
}

// childrenUnion is the literal union of the direct children's textual
// names, or the bottom type when there are none.
func childrenUnion(r routes.Route) string {
	names := r.ChildNames()
	if len(names) == 0 {
		return "never"
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = "'" + escapeQuoted(name) + "'"
	}
	return strings.Join(parts, " | ")
}

// escapeQuoted makes a value safe to embed in a single-quoted TypeScript
// string literal.
func escapeQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func (e *Emitter) write(ctx context.Context, content []byte, count int) bool {
	target := e.OutputURL()

	if exists, _ := e.fs.Exists(ctx, target); exists {
		previous, err := e.fs.DownloadWithURL(ctx, target)
		if err == nil && bytes.Equal(previous, content) {
			// Already up to date. Stay quiet so nothing downstream is
			// triggered by this round.
			return false
		}
	}

	if err := e.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		e.reporter.Errorf("failed to write %s: %v", target, err)
		return false
	}

	if e.excluder != nil {
		_ = e.excluder.Exclude(target)
	}

	e.reporter.Infof("wrote %d routes to %s", count, target)
	e.reporter.Hintf("make sure %q is covered by the \"include\" of your tsconfig", FileName)
	return true
}

const header = `/* eslint-disable */
/* prettier-ignore */
// @ts-nocheck
// Generated by routegen. Do not edit this file directly.
import type { RouteRecordInfo } from 'vue-router'

export interface RouteNamedMap {
`

const footer = `}

declare module 'vue-router' {
  interface TypesConfig {
    RouteNamedMap: RouteNamedMap
  }
}
`
