// README: Map codec between Booking and the document-store record shape.
package booking

import (
	"math"
	"time"

	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/store"
	"droptaxi/internal/types"
)

// encodeBooking produces the persisted record. Field names are the interop
// contract with existing data and must not change.
func encodeBooking(b Booking) map[string]any {
	var returnDate any
	if b.TripType == pricing.TripRoundTrip {
		returnDate = b.ReturnDate
	}
	return map[string]any{
		"bookingId":      b.BookingID,
		"tripType":       string(b.TripType),
		"date":           b.Date,
		"returnDate":     returnDate,
		"source":         encodePlace(b.Source),
		"destination":    encodePlace(b.Destination),
		"vehicleType":    b.VehicleType,
		"cost":           b.Cost,
		"distance":       b.Distance,
		"duration":       b.Duration,
		"name":           b.Name,
		"phone":          b.Phone,
		"userId":         b.UserID,
		"userEmail":      b.UserEmail,
		"status":         string(b.Status),
		"invoiceEnabled": b.InvoiceEnabled,
		"createdAt":      store.ServerTimestamp,
	}
}

func encodePlace(p Place) map[string]any {
	loc := map[string]any{}
	if p.Location.Lat != nil {
		loc["lat"] = *p.Location.Lat
	}
	if p.Location.Lng != nil {
		loc["lng"] = *p.Location.Lng
	}
	return map[string]any{
		"displayName":      p.DisplayName,
		"formattedAddress": p.FormattedAddress,
		"fullAddress":      p.FullAddress,
		"location":         loc,
	}
}

// decodeBooking reads a stored record leniently: numeric fields coerce
// non-numeric or missing values to zero, never an error, and an absent
// status reads as pending. TotalCost is always recomputed from the decoded
// fields; the stored value is display history.
func decodeBooking(doc store.Document) Booking {
	m := doc.Data
	status, ok := ParseStatus(docString(m, "status"))
	if !ok {
		status = StatusPending
	}
	b := Booking{
		ID:             types.ID(doc.ID),
		BookingID:      docString(m, "bookingId"),
		TripType:       pricing.TripType(docString(m, "tripType")),
		Date:           docString(m, "date"),
		ReturnDate:     docString(m, "returnDate"),
		Source:         decodePlace(m, "source"),
		Destination:    decodePlace(m, "destination"),
		VehicleType:    docString(m, "vehicleType"),
		Distance:       docFloat(m, "distance"),
		Duration:       docInt(m, "duration"),
		Cost:           docInt(m, "cost"),
		TollCharges:    docInt(m, "tollCharges"),
		ParkingCharges: docInt(m, "parkingCharges"),
		HillCharges:    docInt(m, "hillCharges"),
		PermitCharges:  docInt(m, "permitCharges"),
		Name:           docString(m, "name"),
		Phone:          docString(m, "phone"),
		UserID:         docString(m, "userId"),
		UserEmail:      docString(m, "userEmail"),
		Status:         status,
		InvoiceEnabled: docBool(m, "invoiceEnabled"),
		CreatedAt:      docTime(m, "createdAt"),
	}
	b.TotalCost = TotalCost(b)
	return b
}

func decodePlace(m map[string]any, key string) Place {
	pm, _ := m[key].(map[string]any)
	p := Place{
		DisplayName:      docString(pm, "displayName"),
		FormattedAddress: docString(pm, "formattedAddress"),
		FullAddress:      docString(pm, "fullAddress"),
	}
	if lm, ok := pm["location"].(map[string]any); ok {
		if lat, ok := docNumber(lm["lat"]); ok {
			p.Location.Lat = &lat
		}
		if lng, ok := docNumber(lm["lng"]); ok {
			p.Location.Lng = &lng
		}
	}
	return p
}

func docString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func docBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func docFloat(m map[string]any, key string) float64 {
	n, ok := docNumber(m[key])
	if !ok {
		return 0
	}
	return n
}

func docInt(m map[string]any, key string) int64 {
	n, ok := docNumber(m[key])
	if !ok {
		return 0
	}
	return int64(math.Round(n))
}

func docNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func docTime(m map[string]any, key string) time.Time {
	t, _ := m[key].(time.Time)
	return t
}
