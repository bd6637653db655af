package invoice

import (
	"bytes"
	"testing"
	"time"

	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
)

func fp(v float64) *float64 { return &v }

func sampleBooking() booking.Booking {
	return booking.Booking{
		ID:        "doc-1",
		BookingID: "PV2345-ArunKumar-0905",
		TripType:  pricing.TripRoundTrip,
		Date:      "2024-01-01",
		ReturnDate: "2024-01-03",
		Source: booking.Place{
			FullAddress: "Central Station, Park Town, Chennai",
			Location:    booking.Location{Lat: fp(13.08), Lng: fp(80.27)},
		},
		Destination: booking.Place{
			FullAddress: "Pondicherry Bus Stand, Pondicherry",
			Location:    booking.Location{Lat: fp(11.93), Lng: fp(79.81)},
		},
		VehicleType: "sedan",
		Distance:    155.2,
		Duration:    190,
		Cost:        3120,
		TollCharges: 250,
		Name:        "Arun Kumar",
		Phone:       "9884912345",
		Status:      booking.StatusCompleted,
		CreatedAt:   time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC),
	}
}

func TestBuild(t *testing.T) {
	bl := NewBuilder("Pranav Drop Taxi", "+91 98849 49171", pricing.DefaultCatalog())

	pdf, err := bl.Build(sampleBooking())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", pdf[:min(8, len(pdf))])
	}
	if len(pdf) < 1000 {
		t.Errorf("suspiciously small invoice: %d bytes", len(pdf))
	}
}

func TestBuild_MinimalBooking(t *testing.T) {
	bl := NewBuilder("Pranav Drop Taxi", "+91 98849 49171", pricing.DefaultCatalog())

	// A booking created before any admin touched it: no charges, no name,
	// one-way, unknown create time.
	b := booking.Booking{
		BookingID:   "PV0001-User-0000",
		TripType:    pricing.TripOneWay,
		Date:        "2024-03-10",
		VehicleType: "suv",
		Cost:        2280,
	}
	pdf, err := bl.Build(b)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}
