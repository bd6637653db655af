// README: In-memory implementation of the document store port for tests.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// MemoryStore mimics the document store semantics closely enough for service
// tests: random IDs, server timestamps, dotted-path equality queries, merge
// updates, and full-snapshot subscription pushes on every mutation.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	subs        map[string][]*memSub
}

type memSub struct {
	fn     func([]Document)
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		subs:        make(map[string][]*memSub),
	}
}

func (s *MemoryStore) Create(_ context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]map[string]any)
		s.collections[collection] = col
	}
	id := newDocID()
	col[id] = resolveSentinels(cloneMap(data))
	s.mu.Unlock()
	s.notify(collection)
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: cloneMap(data)}, nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, filters ...Filter) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []Document
	for id, data := range s.collections[collection] {
		if matchesAll(data, filters) {
			docs = append(docs, Document{ID: id, Data: cloneMap(data)})
		}
	}
	return docs, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	data, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	for k, v := range resolveSentinels(cloneMap(fields)) {
		data[k] = v
	}
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	delete(s.collections[collection], id)
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, collection string, onSnapshot func([]Document)) (func(), error) {
	sub := &memSub{fn: onSnapshot}
	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], sub)
	s.mu.Unlock()

	// Initial snapshot, matching the change feed's full-state delivery.
	s.notify(collection)

	unsubscribe := func() {
		s.mu.Lock()
		sub.closed = true
		s.mu.Unlock()
	}
	go func() {
		<-ctx.Done()
		unsubscribe()
	}()
	return unsubscribe, nil
}

func (s *MemoryStore) notify(collection string) {
	s.mu.Lock()
	var docs []Document
	for id, data := range s.collections[collection] {
		docs = append(docs, Document{ID: id, Data: cloneMap(data)})
	}
	var fns []func([]Document)
	for _, sub := range s.subs[collection] {
		if !sub.closed {
			fns = append(fns, sub.fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(docs)
	}
}

func newDocID() string {
	var b [10]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneMap(nested)
		} else {
			out[k] = v
		}
	}
	return out
}

func resolveSentinels(data map[string]any) map[string]any {
	for k, v := range data {
		switch tv := v.(type) {
		case serverTimestamp:
			data[k] = time.Now()
		case map[string]any:
			data[k] = resolveSentinels(tv)
		}
	}
	return data
}

func matchesAll(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		got, ok := lookupPath(data, f.Path)
		if !ok || !looseEqual(got, f.Value) {
			return false
		}
	}
	return true
}

// lookupPath resolves a dotted field path through nested maps.
func lookupPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// looseEqual compares values the way the real store does: numbers compare by
// value regardless of Go type.
func looseEqual(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
