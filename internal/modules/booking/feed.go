// README: Live booking feed: snapshot aggregation and new-booking detection.
package booking

import (
	"context"

	"droptaxi/internal/store"
)

// Stats are status-bucketed booking counts for the admin dashboard.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Aggregate recomputes stats from a full snapshot. The change feed delivers
// full state at least once per change, so this is safely re-runnable on
// repeated snapshots.
func Aggregate(bookings []Booking) Stats {
	var st Stats
	st.Total = len(bookings)
	for _, b := range bookings {
		switch b.Status {
		case StatusConfirmed:
			st.Confirmed++
		case StatusCompleted:
			st.Completed++
		case StatusCancelled:
			st.Cancelled++
		default:
			st.Pending++
		}
	}
	return st
}

// Event is a signal derived from comparing consecutive snapshots.
type Event struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

const EventNewBookings = "new_bookings"

// Diff derives "new since last" events from two consecutive stats. The first
// snapshot (prev.Total == 0 with no history) produces nothing: a dashboard
// opening onto existing bookings is not a new-booking alert.
func Diff(prev, cur Stats) []Event {
	if prev.Total > 0 && cur.Total > prev.Total {
		return []Event{{Type: EventNewBookings, Count: cur.Total - prev.Total}}
	}
	return nil
}

// Update is one feed delivery: the recomputed stats plus any events derived
// against the previous snapshot.
type Update struct {
	Stats  Stats   `json:"stats"`
	Events []Event `json:"events,omitempty"`
}

// Watch subscribes to the booking change feed and emits an Update per
// snapshot. The channel closes when ctx ends. Slow consumers only ever miss
// intermediate states: each delivery carries full recomputed stats.
func (s *Service) Watch(ctx context.Context) (<-chan Update, error) {
	ch := make(chan Update, 1)
	var prev Stats
	first := true

	unsubscribe, err := s.store.Subscribe(ctx, Collection, func(docs []store.Document) {
		bookings := make([]Booking, 0, len(docs))
		for _, d := range docs {
			bookings = append(bookings, decodeBooking(d))
		}
		cur := Aggregate(bookings)
		var events []Event
		if !first {
			events = Diff(prev, cur)
		}
		first = false
		prev = cur

		// Drop the stale pending update, if any, in favour of the new one.
		select {
		case <-ch:
		default:
		}
		ch <- Update{Stats: cur, Events: events}
	})
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		unsubscribe()
	}()
	return ch, nil
}
