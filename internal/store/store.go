// Package store defines the generic document-store port the modules persist
// through: flat CRUD on named collections plus a full-snapshot change feed.
// Field names written through this port are the interop contract with any
// existing data, so callers must not rename them.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// ServerTimestamp is a sentinel value; implementations replace it with the
// store's server-assigned write time.
var ServerTimestamp = serverTimestamp{}

type serverTimestamp struct{}

// Document is one stored record with its store-assigned ID.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is a single equality predicate. Path may be dotted to reach nested
// fields (e.g. "source.fullAddress").
type Filter struct {
	Path  string
	Op    string
	Value any
}

// Where builds an equality filter.
func Where(path string, value any) Filter {
	return Filter{Path: path, Op: "==", Value: value}
}

// Store is the document-store collaborator. Single-document writes are
// atomic; there are no multi-document transactions at this port, so
// check-then-insert sequences (duplicate guards, cascade deletes) are not
// race-free and callers must treat them as best effort.
type Store interface {
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error

	// Subscribe registers a change-feed consumer. onSnapshot receives the
	// full current contents of the collection on every change (at-least-once;
	// consumers must be idempotent with respect to repeated snapshots). The
	// returned func unsubscribes; it must be called to avoid leaked feeds.
	Subscribe(ctx context.Context, collection string, onSnapshot func([]Document)) (func(), error)
}
