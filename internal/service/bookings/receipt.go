package bookings

import (
	"strings"
	"text/template"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"datetime": func(t time.Time) string { return t.Format(domain.DisplayTimeFormat) },
	"duration": models.FormatDuration,
}).Parse(`PARQHUB PARKING RECEIPT
========================

Receipt #: {{.Payment.ReceiptNumber}}
Date: {{datetime .Payment.Timestamp}}
Customer: {{.User.Name}}
Email: {{.User.Email}}

VEHICLE INFORMATION
-------------------
Vehicle: {{.Vehicle.Brand}} {{.Vehicle.Model}}
License: {{.Vehicle.PlateNumber}}

PARKING DETAILS
---------------
{{- if .Lot}}
Location: {{.Lot.Location}}, {{.Lot.City}}
{{- end}}
{{- if .Payment.SlotID}}
Slot ID: {{.Payment.SlotID}}
{{- end}}
Start Time: {{datetime .Booking.StartTime}}
{{- if .Booking.EndTime}}
End Time: {{datetime .Booking.EndTime}}
Duration: {{duration .Booking.Duration}}
{{- end}}

PAYMENT INFORMATION
-------------------
Amount: {{.Currency}} {{.Payment.Amount.StringFixed 2}}
Method: {{.Payment.Method}}
Status: {{.Payment.Status}}

Thank you for using ParQHub!
Generated on: {{datetime .GeneratedAt}}
`))

type receiptData struct {
	Payment     *domain.Payment
	Booking     *domain.Booking
	User        *domain.User
	Vehicle     *domain.Vehicle
	Lot         *domain.ParkingLot
	Currency    string
	GeneratedAt time.Time
}

func renderReceipt(data receiptData) (string, error) {
	var b strings.Builder
	if err := receiptTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
