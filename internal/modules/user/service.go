// README: User admin service: listing, role edits, cascade delete.
package user

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"droptaxi/internal/modules/booking"
	"droptaxi/internal/store"
)

var ErrNotFound = errors.New("user not found")

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	docs, err := s.store.Query(ctx, Collection)
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(docs))
	for _, d := range docs {
		users = append(users, decodeUser(d))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// SetRole updates a user's role value.
func (s *Service) SetRole(ctx context.Context, id, role string) error {
	if _, err := s.store.Get(ctx, Collection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.store.Update(ctx, Collection, id, map[string]any{"role": role})
}

// CascadeResult reports each step of a user deletion. The store has no
// multi-document transaction at this port, so a failure mid-way leaves the
// completed steps in place; the caller sees exactly how far it got.
type CascadeResult struct {
	BookingsDeleted []string `json:"bookingsDeleted"`
	UserDeleted     bool     `json:"userDeleted"`
	FailedStep      string   `json:"failedStep,omitempty"`
}

// Delete removes every booking owned by the user, then the user record
// itself. It stops at the first failure and reports per-step outcome either
// way; rerunning after a partial failure is safe because each remaining step
// is independent.
func (s *Service) Delete(ctx context.Context, id string) (CascadeResult, error) {
	var res CascadeResult

	docs, err := s.store.Query(ctx, booking.Collection, store.Where("userId", id))
	if err != nil {
		res.FailedStep = "list bookings"
		return res, fmt.Errorf("listing user bookings: %w", err)
	}
	for _, d := range docs {
		if err := s.store.Delete(ctx, booking.Collection, d.ID); err != nil {
			res.FailedStep = "delete booking " + d.ID
			return res, fmt.Errorf("deleting booking %s: %w", d.ID, err)
		}
		res.BookingsDeleted = append(res.BookingsDeleted, d.ID)
	}

	if err := s.store.Delete(ctx, Collection, id); err != nil {
		res.FailedStep = "delete user"
		return res, fmt.Errorf("deleting user %s: %w", id, err)
	}
	res.UserDeleted = true
	return res, nil
}
