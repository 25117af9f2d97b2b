package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"wemender/entity"
)

const subject = "Wemender GJU – Jegyvisszaigazolás"

type Notifier interface {
	SendTicketConfirmation(ctx context.Context, confirmation TicketConfirmation) error
}

// TicketConfirmation is everything the confirmation email shows. QRDataURL
// may be empty, in which case the image is left out.
type TicketConfirmation struct {
	Ticket    entity.Ticket
	VerifyURL string
	QRDataURL string
}

type Email struct {
	To      string
	Subject string
	HTML    string
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: system-ui, -apple-system, 'Segoe UI', sans-serif;">
  <h2>Wemender GJU – Jegyvisszaigazolás</h2>
  <p>Kedves {{.Name}}!</p>
  <p>Sikeresen megvásároltad a(z) <strong>{{.Label}}</strong> jegyed.</p>
  <ul>
    <li>Mennyiség: <strong>{{.Quantity}}</strong></li>
    <li>Végösszeg: <strong>{{.TotalPrice}} Ft</strong></li>
    <li>Jegykód: <strong>{{.Code}}</strong></li>
  </ul>
  <p>A jegyed ellenőrzése itt is lehetséges: <a href="{{.VerifyURL}}">{{.VerifyURL}}</a></p>
  {{- if .QR}}
  <p><strong>QR-kód a gyors beléptetéshez:</strong></p>
  <p><img src="{{.QR}}" alt="Jegy QR kód" /></p>
  {{- end}}
  <p>Üdv,<br />Wemender GJU</p>
</div>
`))

type confirmationView struct {
	Name       string
	Label      string
	Quantity   int
	TotalPrice string
	Code       string
	VerifyURL  string
	QR         template.URL
}

// Compose renders the confirmation email. All ticket values are escaped.
func Compose(c TicketConfirmation) (Email, error) {
	view := confirmationView{
		Name:       c.Ticket.Name,
		Label:      c.Ticket.TicketType.Label(),
		Quantity:   c.Ticket.Quantity,
		TotalPrice: c.Ticket.TotalPrice.String(),
		Code:       c.Ticket.Code,
		VerifyURL:  c.VerifyURL,
		// data: URLs are produced by the QR encoder, never by the client.
		QR: template.URL(c.QRDataURL),
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, view); err != nil {
		return Email{}, fmt.Errorf("rendering confirmation email: %w", err)
	}

	return Email{
		To:      c.Ticket.Email,
		Subject: subject,
		HTML:    body.String(),
	}, nil
}
