// README: Review service: one review per (booking, user).
package review

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"droptaxi/internal/store"
)

var (
	ErrInvalidReview   = errors.New("review text is empty")
	ErrDuplicateReview = errors.New("a review for this booking already exists")
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Submit stores a review after rejecting blank text and duplicates for the
// same (bookingID, userID) pair. The uniqueness check is check-then-insert,
// same caveat as booking creation.
func (s *Service) Submit(ctx context.Context, bookingID, userID, name, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidReview
	}
	existing, err := s.store.Query(ctx, Collection,
		store.Where("bookingId", bookingID),
		store.Where("userId", userID),
	)
	if err != nil {
		return fmt.Errorf("review lookup: %w", err)
	}
	if len(existing) > 0 {
		return ErrDuplicateReview
	}
	_, err = s.store.Create(ctx, Collection, encodeReview(Review{
		BookingID: bookingID,
		UserID:    userID,
		Name:      name,
		Review:    text,
	}))
	if err != nil {
		return fmt.Errorf("storing review: %w", err)
	}
	return nil
}

// ListByUser returns a customer's reviews.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	docs, err := s.store.Query(ctx, Collection, store.Where("userId", userID))
	if err != nil {
		return nil, err
	}
	return sortedReviews(docs), nil
}

// ListAll returns every review, newest first. Public testimonial wall and
// admin console.
func (s *Service) ListAll(ctx context.Context) ([]Review, error) {
	docs, err := s.store.Query(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return sortedReviews(docs), nil
}

// Delete removes a review. Admin only.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, Collection, id)
}

func sortedReviews(docs []store.Document) []Review {
	reviews := make([]Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, decodeReview(d))
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews
}
