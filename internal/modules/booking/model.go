// README: Booking aggregate, place normalization, status set, and cost rules.
package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/types"
)

// Collection is the document-store collection bookings live in.
const Collection = "bookings"

// DriverAllowancePerDay is the driver bata accrued per trip day.
const DriverAllowancePerDay = 400

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates an externally supplied status value. An empty value
// reads as pending: older records carry no explicit status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), true
	case "":
		return StatusPending, true
	}
	return "", false
}

// Location is a coordinate pair whose components may be absent. A Place is
// only persistable once both are present.
type Location struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Place is a geocoded point of interest as collected by the booking form.
type Place struct {
	DisplayName      string   `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	FullAddress      string   `json:"fullAddress"`
	Location         Location `json:"location"`
}

// ExtractPlaceDetails normalizes a place: FullAddress is derived from the
// display name and formatted address, joined when both are present. Applying
// it twice yields the same result.
func ExtractPlaceDetails(p Place) Place {
	switch {
	case p.DisplayName != "" && p.FormattedAddress != "":
		p.FullAddress = p.DisplayName + ", " + p.FormattedAddress
	case p.FormattedAddress != "":
		p.FullAddress = p.FormattedAddress
	default:
		p.FullAddress = p.DisplayName
	}
	return p
}

// Valid reports whether the place can be persisted: an address and both
// coordinates are present.
func (p Place) Valid() bool {
	return p.FullAddress != "" && p.Location.Lat != nil && p.Location.Lng != nil
}

// Point returns the coordinates, or nil when they are incomplete.
func (p Place) Point() *types.Point {
	if p.Location.Lat == nil || p.Location.Lng == nil {
		return nil
	}
	return &types.Point{Lat: *p.Location.Lat, Lng: *p.Location.Lng}
}

// Booking is the central entity. Monetary fields are whole rupees; Distance
// is km; Duration is minutes. Dates are calendar days in "2006-01-02" form,
// matching the stored records.
type Booking struct {
	ID         types.ID         `json:"id"`
	BookingID  string           `json:"bookingId"`
	TripType   pricing.TripType `json:"tripType"`
	Date       string           `json:"date"`
	ReturnDate string           `json:"returnDate,omitempty"` // empty unless roundtrip
	Source     Place            `json:"source"`
	Destination Place           `json:"destination"`
	VehicleType string          `json:"vehicleType"`

	Distance float64 `json:"distance"`
	Duration int64   `json:"duration"`
	Cost     int64   `json:"cost"`

	TollCharges    int64 `json:"tollCharges"`
	ParkingCharges int64 `json:"parkingCharges"`
	HillCharges    int64 `json:"hillCharges"`
	PermitCharges  int64 `json:"permitCharges"`

	// TotalCost is recomputed on every read; the stored value is only
	// authoritative once an administrator saves charges.
	TotalCost int64 `json:"totalCost"`

	Name      string `json:"name"`
	Phone     string `json:"phone"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`

	Status         Status    `json:"status"`
	InvoiceEnabled bool      `json:"invoiceEnabled"`
	CreatedAt      time.Time `json:"createdAt"`
}

// GenerateBookingID builds the human-readable display label:
// "PV" + last 4 phone digits + "-" + name (whitespace stripped, max 10) +
// "-" + HHMM. It is not guaranteed unique; the store-assigned ID is the
// primary key.
func GenerateBookingID(name, phone string, now time.Time) string {
	last4 := phone
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	clean := strings.Join(strings.Fields(name), "")
	if clean == "" {
		clean = "User"
	}
	if len(clean) > 10 {
		clean = clean[:10]
	}
	return fmt.Sprintf("PV%s-%s-%02d%02d", last4, clean, now.Hour(), now.Minute())
}

// TripDays is the billable day count: 1 for one-way trips; for round trips,
// the ceiling of the calendar span plus one (both travel days count), with a
// floor of 1. Unparseable dates read as a single day.
func TripDays(date, returnDate string) int {
	if returnDate == "" {
		return 1
	}
	start, err1 := time.Parse("2006-01-02", date)
	end, err2 := time.Parse("2006-01-02", returnDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	diff := int(math.Ceil(end.Sub(start).Hours() / 24))
	if diff <= 0 {
		return 1
	}
	return diff + 1
}

// CostBreakdown itemizes the authoritative total for display and invoices.
type CostBreakdown struct {
	Days            int   `json:"days"`
	BaseFare        int64 `json:"baseFare"`
	DriverAllowance int64 `json:"driverAllowance"`
	TollCharges     int64 `json:"tollCharges"`
	ParkingCharges  int64 `json:"parkingCharges"`
	HillCharges     int64 `json:"hillCharges"`
	PermitCharges   int64 `json:"permitCharges"`
	Total           int64 `json:"total"`
}

// Breakdown computes the itemized total: base fare plus per-day driver
// allowance plus the four surcharges.
func Breakdown(b Booking) CostBreakdown {
	days := TripDays(b.Date, b.ReturnDate)
	allowance := int64(DriverAllowancePerDay) * int64(days)
	return CostBreakdown{
		Days:            days,
		BaseFare:        b.Cost,
		DriverAllowance: allowance,
		TollCharges:     b.TollCharges,
		ParkingCharges:  b.ParkingCharges,
		HillCharges:     b.HillCharges,
		PermitCharges:   b.PermitCharges,
		Total:           b.Cost + allowance + b.TollCharges + b.ParkingCharges + b.HillCharges + b.PermitCharges,
	}
}

// TotalCost is the authoritative total per the ledger rules.
func TotalCost(b Booking) int64 {
	return Breakdown(b).Total
}

// StatusMessage is the customer-facing text sent on a status change.
func StatusMessage(name, bookingID string, st Status) string {
	return fmt.Sprintf("Hi %s,\nYour Booking ID: %s is %s.\nThank You!", name, bookingID, st)
}
