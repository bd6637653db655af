// README: Customer review entity.
package review

import (
	"time"

	"droptaxi/internal/store"
	"droptaxi/internal/types"
)

const Collection = "reviews"

// Review is customer feedback keyed by (bookingId, userId); at most one per
// pair.
type Review struct {
	ID        types.ID  `json:"id"`
	BookingID string    `json:"bookingId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}

func encodeReview(r Review) map[string]any {
	return map[string]any{
		"bookingId": r.BookingID,
		"userId":    r.UserID,
		"name":      r.Name,
		"review":    r.Review,
		"createdAt": store.ServerTimestamp,
	}
}

func decodeReview(doc store.Document) Review {
	m := doc.Data
	r := Review{ID: types.ID(doc.ID)}
	r.BookingID, _ = m["bookingId"].(string)
	r.UserID, _ = m["userId"].(string)
	r.Name, _ = m["name"].(string)
	r.Review, _ = m["review"].(string)
	r.CreatedAt, _ = m["createdAt"].(time.Time)
	return r
}
