package brevo

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Bonjour {{.Name}},</p>
  <p>Votre rendez-vous à domicile est confirmé. Voici les détails :</p>
  <ul>
    <li>Prestation : {{.ServiceName}}</li>
    <li>Date : {{.Date}}</li>
    <li>Heure : {{.Time}}</li>
    <li>Adresse : {{.Address}}</li>
    <li>Référence : {{.Reference}}</li>
  </ul>
  <p>En cas d'empêchement, merci de nous prévenir au plus tôt.</p>
  <p>À bientôt !</p>
</body>
</html>`

const cancellationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Bonjour {{.Name}},</p>
  <p>Votre rendez-vous du {{.Date}} à {{.Time}} ({{.ServiceName}}) a été annulé.</p>
  <ul>
    <li>Adresse : {{.Address}}</li>
    <li>Référence : {{.Reference}}</li>
  </ul>
  <p>N'hésitez pas à réserver un nouveau créneau sur notre site.</p>
</body>
</html>`

var (
	confirmationTmpl = template.Must(template.New("booking_confirmation").Parse(confirmationTemplate))
	cancellationTmpl = template.Must(template.New("booking_cancellation").Parse(cancellationTemplate))
)

type emailData struct {
	Name        string
	ServiceName string
	Date        string
	Time        string
	Address     string
	Reference   string
}

func newEmailData(b *domain.Booking, catalog domain.Catalog) emailData {
	return emailData{
		Name:        b.Name,
		ServiceName: catalog.DisplayName(b.ServiceID),
		Date:        FormatDateFR(b.Date),
		Time:        b.Time.String(),
		Address:     b.Address,
		Reference:   b.ID,
	}
}

func render(tmpl *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	weekdaysFR = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	monthsFR   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// FormatDateFR форматирует дату в длинном французском формате: "lundi 10 juin 2024"
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", weekdaysFR[t.Weekday()], t.Day(), monthsFR[t.Month()-1], t.Year())
}
