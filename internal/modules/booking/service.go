// README: Booking ledger service: creation, charge mutation, status lifecycle.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"time"

	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/notify"
	"droptaxi/internal/store"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateBooking = errors.New("a booking with these details already exists")
	ErrNotFound         = errors.New("booking not found")
	// ErrCompletedLocked: a completed trip's actuals are frozen so an issued
	// invoice is not disturbed.
	ErrCompletedLocked = errors.New("completed booking charges are read-only")
	ErrUnchanged       = errors.New("no charge fields changed")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotCompleted    = errors.New("booking is not completed")
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
)

type Service struct {
	store    store.Store
	catalog  *pricing.Catalog
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(st store.Store, catalog *pricing.Catalog, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{store: st, catalog: catalog, notifier: notifier, now: time.Now}
}

// CreateCommand carries a customer submission: trip parameters plus the
// provisional estimate produced by the fare estimator.
type CreateCommand struct {
	TripType    pricing.TripType
	Date        string
	ReturnDate  string
	Source      Place
	Destination Place
	VehicleType string
	Distance    float64
	Duration    int64
	Cost        int64
	Name        string
	Phone       string
	UserID      string
	UserEmail   string
}

// Create validates the submission, guards against duplicates, and persists a
// pending booking. It returns the generated display booking ID.
//
// The duplicate guard is check-then-insert; the store offers no transaction
// at this port, so two simultaneous identical submissions can race. Repeating
// the same request afterwards yields the same rejection.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (string, error) {
	if err := s.validate(&cmd); err != nil {
		return "", err
	}

	existing, err := s.store.Query(ctx, Collection,
		store.Where("phone", cmd.Phone),
		store.Where("date", cmd.Date),
		store.Where("source.fullAddress", cmd.Source.FullAddress),
		store.Where("destination.fullAddress", cmd.Destination.FullAddress),
	)
	if err != nil {
		return "", fmt.Errorf("duplicate check: %w", err)
	}
	if len(existing) > 0 {
		return "", ErrDuplicateBooking
	}

	bookingID := GenerateBookingID(cmd.Name, cmd.Phone, s.now())
	b := Booking{
		BookingID:   bookingID,
		TripType:    cmd.TripType,
		Date:        cmd.Date,
		ReturnDate:  cmd.ReturnDate,
		Source:      cmd.Source,
		Destination: cmd.Destination,
		VehicleType: cmd.VehicleType,
		Distance:    cmd.Distance,
		Duration:    cmd.Duration,
		Cost:        cmd.Cost,
		Name:        cmd.Name,
		Phone:       cmd.Phone,
		UserID:      cmd.UserID,
		UserEmail:   cmd.UserEmail,
		Status:      StatusPending,
	}
	if _, err := s.store.Create(ctx, Collection, encodeBooking(b)); err != nil {
		return "", fmt.Errorf("storing booking: %w", err)
	}
	return bookingID, nil
}

func (s *Service) validate(cmd *CreateCommand) error {
	if !nameRe.MatchString(cmd.Name) {
		return fmt.Errorf("%w: name must contain only letters and spaces", ErrValidation)
	}
	if !phoneRe.MatchString(cmd.Phone) {
		return fmt.Errorf("%w: phone must be a 10-digit Indian mobile number", ErrValidation)
	}
	if cmd.Date == "" {
		return fmt.Errorf("%w: travel date is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", cmd.Date); err != nil {
		return fmt.Errorf("%w: travel date must be YYYY-MM-DD", ErrValidation)
	}
	if !cmd.TripType.Valid() {
		return fmt.Errorf("%w: trip type must be oneway or roundtrip", ErrValidation)
	}
	if cmd.TripType == pricing.TripRoundTrip {
		if cmd.ReturnDate == "" {
			return fmt.Errorf("%w: return date is required for round trips", ErrValidation)
		}
		if _, err := time.Parse("2006-01-02", cmd.ReturnDate); err != nil {
			return fmt.Errorf("%w: return date must be YYYY-MM-DD", ErrValidation)
		}
		if cmd.ReturnDate < cmd.Date {
			return fmt.Errorf("%w: return date must not be before the travel date", ErrValidation)
		}
	} else {
		cmd.ReturnDate = ""
	}
	if _, ok := s.catalog.Lookup(cmd.VehicleType); !ok {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrValidation, cmd.VehicleType)
	}
	cmd.Source = ExtractPlaceDetails(cmd.Source)
	cmd.Destination = ExtractPlaceDetails(cmd.Destination)
	if !cmd.Source.Valid() || !cmd.Destination.Valid() {
		return fmt.Errorf("%w: incomplete or invalid source/destination location", ErrValidation)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	doc, err := s.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return decodeBooking(doc), nil
}

// ListByUser returns a customer's bookings, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	docs, err := s.store.Query(ctx, Collection, store.Where("userId", userID))
	if err != nil {
		return nil, err
	}
	return sortedBookings(docs), nil
}

// ListAll returns every booking, newest first. Admin console view.
func (s *Service) ListAll(ctx context.Context) ([]Booking, error) {
	docs, err := s.store.Query(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return sortedBookings(docs), nil
}

func sortedBookings(docs []store.Document) []Booking {
	bookings := make([]Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, decodeBooking(d))
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings
}

// ChargeUpdate is an administrator's batch overwrite of the trip actuals.
type ChargeUpdate struct {
	Distance       float64
	Duration       int64
	Cost           int64
	TollCharges    int64
	ParkingCharges int64
	HillCharges    int64
	PermitCharges  int64
}

// SaveCharges applies a charge batch. It is rejected once the booking is
// completed, is a no-op (ErrUnchanged) when nothing differs, and otherwise
// persists the fields together with the recomputed total.
func (s *Service) SaveCharges(ctx context.Context, id string, u ChargeUpdate) (Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if b.Status == StatusCompleted {
		return Booking{}, ErrCompletedLocked
	}
	if u.Distance == b.Distance && u.Duration == b.Duration && u.Cost == b.Cost &&
		u.TollCharges == b.TollCharges && u.ParkingCharges == b.ParkingCharges &&
		u.HillCharges == b.HillCharges && u.PermitCharges == b.PermitCharges {
		return Booking{}, ErrUnchanged
	}

	b.Distance = u.Distance
	b.Duration = u.Duration
	b.Cost = u.Cost
	b.TollCharges = u.TollCharges
	b.ParkingCharges = u.ParkingCharges
	b.HillCharges = u.HillCharges
	b.PermitCharges = u.PermitCharges
	b.TotalCost = TotalCost(b)

	err = s.store.Update(ctx, Collection, id, map[string]any{
		"distance":       b.Distance,
		"duration":       b.Duration,
		"cost":           b.Cost,
		"tollCharges":    b.TollCharges,
		"parkingCharges": b.ParkingCharges,
		"hillCharges":    b.HillCharges,
		"permitCharges":  b.PermitCharges,
		"totalCost":      b.TotalCost,
	})
	if err != nil {
		return Booking{}, fmt.Errorf("saving charges: %w", err)
	}
	return b, nil
}

// SetStatus writes a new lifecycle status. The four statuses form a flat
// set: any status may follow any other. The customer notification is fire
// and forget; a delivery failure never rolls back or fails the write.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Booking, error) {
	if _, ok := ParseStatus(string(status)); !ok || status == "" {
		return Booking{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	b, err := s.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if err := s.store.Update(ctx, Collection, id, map[string]any{"status": string(status)}); err != nil {
		return Booking{}, fmt.Errorf("updating status: %w", err)
	}
	b.Status = status

	msg := StatusMessage(b.Name, b.BookingID, status)
	if err := s.notifier.Notify(ctx, b.Phone, msg); err != nil {
		log.Printf("booking %s: status notification failed: %v", id, err)
	}
	return b, nil
}

// EnableInvoice lets the customer download the invoice. Allowed only once
// the trip is completed.
func (s *Service) EnableInvoice(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != StatusCompleted {
		return ErrNotCompleted
	}
	return s.store.Update(ctx, Collection, id, map[string]any{"invoiceEnabled": true})
}

// Delete hard-deletes a booking. Admin only.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, Collection, id)
}
