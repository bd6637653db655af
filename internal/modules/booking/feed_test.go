// README: Feed tests: aggregation, snapshot diffing, and the live watch.
package booking

import (
	"context"
	"testing"
	"time"

	"droptaxi/internal/store"
)

func TestAggregate(t *testing.T) {
	bookings := []Booking{
		{Status: StatusPending},
		{Status: StatusConfirmed},
		{Status: StatusConfirmed},
		{Status: StatusCompleted},
		{Status: StatusCancelled},
		{}, // zero-value status buckets as pending
	}
	got := Aggregate(bookings)
	want := Stats{Total: 6, Pending: 2, Confirmed: 2, Completed: 1, Cancelled: 1}
	if got != want {
		t.Errorf("Aggregate = %+v, want %+v", got, want)
	}
	if Aggregate(nil) != (Stats{}) {
		t.Errorf("Aggregate(nil) = %+v, want zero", Aggregate(nil))
	}
}

func TestDiff(t *testing.T) {
	cases := []struct {
		name      string
		prev, cur Stats
		wantCount int
	}{
		{"growth", Stats{Total: 3}, Stats{Total: 5}, 2},
		{"no change", Stats{Total: 3}, Stats{Total: 3}, 0},
		{"shrink", Stats{Total: 3}, Stats{Total: 2}, 0},
		{"initial load is not an alert", Stats{}, Stats{Total: 10}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := Diff(tc.prev, tc.cur)
			if tc.wantCount == 0 {
				if len(events) != 0 {
					t.Errorf("events = %v, want none", events)
				}
				return
			}
			if len(events) != 1 || events[0].Type != EventNewBookings || events[0].Count != tc.wantCount {
				t.Errorf("events = %v, want one %s event with count %d", events, EventNewBookings, tc.wantCount)
			}
		})
	}
}

func TestWatch(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := svc.Create(ctx, validCommand()); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	updates, err := svc.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Initial snapshot: existing bookings, no events.
	first := recvUpdate(t, updates)
	if first.Stats.Total != 1 || first.Stats.Pending != 1 {
		t.Errorf("initial stats = %+v", first.Stats)
	}
	if len(first.Events) != 0 {
		t.Errorf("initial events = %v, want none", first.Events)
	}

	cmd := validCommand()
	cmd.Phone = "9000000002"
	if _, err := svc.Create(ctx, cmd); err != nil {
		t.Fatalf("second create: %v", err)
	}
	second := recvUpdate(t, updates)
	if second.Stats.Total != 2 {
		t.Errorf("stats after create = %+v", second.Stats)
	}
	if len(second.Events) != 1 || second.Events[0].Count != 1 {
		t.Errorf("events after create = %v, want one new booking", second.Events)
	}
}

func recvUpdate(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed update")
		return Update{}
	}
}
