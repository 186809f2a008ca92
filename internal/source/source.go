// Package source defines where route tables come from. The generator core
// is driven by deliveries and never talks to a transport directly, so the
// pipeline stays testable with in-memory tables.
package source

import (
	"context"

	"github.com/mkove/routegen/internal/routes"
)

// Handler receives one delivered route table.
type Handler func(table []routes.Record)

// Source delivers route tables to a subscribed handler.
type Source interface {
	// Subscribe registers the handler for subsequent deliveries. It must be
	// called before Start.
	Subscribe(h Handler)
	// Start begins delivery and blocks until ctx is done or the source
	// fails permanently.
	Start(ctx context.Context) error
}

// Static delivers a fixed in-memory table once. Used by one-shot generation
// and tests.
type Static struct {
	Table   []routes.Record
	handler Handler
}

func (s *Static) Subscribe(h Handler) {
	s.handler = h
}

func (s *Static) Start(ctx context.Context) error {
	if s.handler != nil {
		s.handler(s.Table)
	}
	return nil
}
