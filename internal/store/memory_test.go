package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_CRUD(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	id, err := st.Create(ctx, "things", map[string]any{"name": "one", "count": 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	doc, err := st.Get(ctx, "things", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Data["name"] != "one" {
		t.Errorf("name = %v", doc.Data["name"])
	}

	if err := st.Update(ctx, "things", id, map[string]any{"count": 2}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	doc, _ = st.Get(ctx, "things", id)
	if doc.Data["count"] != 2 {
		t.Errorf("count after merge update = %v, want 2", doc.Data["count"])
	}
	if doc.Data["name"] != "one" {
		t.Error("merge update clobbered untouched field")
	}

	if err := st.Delete(ctx, "things", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, "things", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := st.Update(ctx, "things", id, map[string]any{"count": 3}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update of missing doc err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_QueryDottedPath(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, _ = st.Create(ctx, "bookings", map[string]any{
		"phone":  "9000000001",
		"source": map[string]any{"fullAddress": "Chennai"},
	})
	_, _ = st.Create(ctx, "bookings", map[string]any{
		"phone":  "9000000001",
		"source": map[string]any{"fullAddress": "Madurai"},
	})

	docs, err := st.Query(ctx, "bookings",
		Where("phone", "9000000001"),
		Where("source.fullAddress", "Chennai"),
	)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("matched %d docs, want 1", len(docs))
	}

	// Numbers compare by value across Go types, as the real store does.
	_, _ = st.Create(ctx, "counters", map[string]any{"n": int64(5)})
	docs, _ = st.Query(ctx, "counters", Where("n", 5))
	if len(docs) != 1 {
		t.Errorf("int64-stored value did not match int filter")
	}

	// Missing path never matches.
	docs, _ = st.Query(ctx, "bookings", Where("destination.fullAddress", "Chennai"))
	if len(docs) != 0 {
		t.Errorf("missing path matched %d docs", len(docs))
	}
}

func TestMemoryStore_ServerTimestamp(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	before := time.Now()
	id, _ := st.Create(ctx, "things", map[string]any{"createdAt": ServerTimestamp})
	doc, _ := st.Get(ctx, "things", id)

	stamped, ok := doc.Data["createdAt"].(time.Time)
	if !ok {
		t.Fatalf("createdAt = %T, want time.Time", doc.Data["createdAt"])
	}
	if stamped.Before(before) || stamped.After(time.Now()) {
		t.Errorf("createdAt %v outside call window", stamped)
	}
}

func TestMemoryStore_Subscribe(t *testing.T) {
	st := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan int, 8)
	unsubscribe, err := st.Subscribe(ctx, "things", func(docs []Document) {
		snapshots <- len(docs)
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if got := <-snapshots; got != 0 {
		t.Errorf("initial snapshot has %d docs, want 0", got)
	}
	id, _ := st.Create(ctx, "things", map[string]any{"name": "one"})
	if got := <-snapshots; got != 1 {
		t.Errorf("snapshot after create has %d docs, want 1", got)
	}

	unsubscribe()
	_ = st.Delete(ctx, "things", id)
	select {
	case n := <-snapshots:
		t.Errorf("received snapshot (%d docs) after unsubscribe", n)
	case <-time.After(50 * time.Millisecond):
	}
}
