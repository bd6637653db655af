// README: PDF invoice rendering with gofpdf.
package invoice

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"

	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/types"
)

// Builder renders customer invoices. Vehicle labels come from the fare
// catalog so the invoice matches what the booking form showed.
type Builder struct {
	OperatorName  string
	OperatorPhone string
	Catalog       *pricing.Catalog
}

func NewBuilder(operatorName, operatorPhone string, catalog *pricing.Catalog) *Builder {
	return &Builder{OperatorName: operatorName, OperatorPhone: operatorPhone, Catalog: catalog}
}

// Build renders the invoice for a booking. The amounts shown are the
// authoritative ledger breakdown: base fare, driver bata per trip day, and
// the itemized surcharges.
func (bl *Builder) Build(b booking.Booking) ([]byte, error) {
	bd := booking.Breakdown(b)
	isRound := b.ReturnDate != ""

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+b.BookingID, false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, bl.OperatorName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Phone: "+bl.OperatorPhone, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Booking info (left) and trip info (right)
	pdf.SetFont("Helvetica", "", 10)
	left := []string{
		fmt.Sprintf("Booking ID: %s", b.BookingID),
		fmt.Sprintf("Customer Name: %s", dash(b.Name)),
		fmt.Sprintf("Phone: %s", dash(b.Phone)),
		fmt.Sprintf("Booked Date: %s", formatDate(b.CreatedAt)),
	}
	right := []string{
		fmt.Sprintf("Trip Type: %s", tripLabel(isRound)),
		fmt.Sprintf("Journey Date: %s", dash(b.Date)),
	}
	if isRound {
		right = append(right,
			fmt.Sprintf("Return Date: %s", b.ReturnDate),
			fmt.Sprintf("Trip Days: %d", bd.Days),
		)
	}
	right = append(right, fmt.Sprintf("Vehicle: %s", bl.Catalog.Label(b.VehicleType)))

	y := pdf.GetY()
	for _, line := range left {
		pdf.SetX(14)
		pdf.CellFormat(90, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.SetY(y)
	for _, line := range right {
		pdf.SetX(120)
		pdf.CellFormat(80, 6, line, "", 1, "L", false, 0, "")
	}
	if len(left) > len(right) {
		pdf.SetY(y + float64(len(left))*6)
	}
	pdf.Ln(6)

	// Trip details
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Trip Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	tripRows := [][2]string{
		{"From", dash(b.Source.FullAddress)},
		{"To", dash(b.Destination.FullAddress)},
		{"Distance", fmt.Sprintf("%d km", int64(math.Round(b.Distance)))},
		{"Duration", formatDuration(b.Duration)},
		{"Base Fare + Driver Bata", fmt.Sprintf("%s + %s x %d = %s",
			types.FormatINR(bd.BaseFare),
			types.FormatINR(booking.DriverAllowancePerDay), bd.Days,
			types.FormatINR(bd.BaseFare+bd.DriverAllowance))},
	}
	for _, row := range tripRows {
		pdf.CellFormat(55, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(130, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Additional charges
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Additional Charges", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	chargeRows := [][2]string{
		{"Toll Charges", rs(bd.TollCharges)},
		{"Parking Charges", rs(bd.ParkingCharges)},
		{"Hill Charges", rs(bd.HillCharges)},
		{"Permit Charges", rs(bd.PermitCharges)},
	}
	for _, row := range chargeRows {
		pdf.CellFormat(55, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(130, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Grand total
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(130, 8, rs(bd.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Thank you for travelling with us.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func rs(amount int64) string {
	return "Rs. " + types.FormatINR(amount)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func tripLabel(isRound bool) string {
	if isRound {
		return "Round Trip"
	}
	return "One Way"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func formatDuration(minutes int64) string {
	hrs := minutes / 60
	mins := minutes % 60
	if hrs > 0 {
		return fmt.Sprintf("%d hrs %d mins", hrs, mins)
	}
	return fmt.Sprintf("%d mins", mins)
}
