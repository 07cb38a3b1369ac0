package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	QueueKey       = "emails"
	FailedQueueKey = "emails:failed"
)

// EmailJob письмо в очереди Redis.
type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

var bookingEmailTemplate = template.Must(template.New("booking").Parse(`<p>Hi {{.Name}},</p>
<p>{{.Intro}}</p>
<table>
  <tr><td>Booking</td><td>#{{.BookingID}}</td></tr>
  <tr><td>Service</td><td>{{.ServiceName}}</td></tr>
  <tr><td>Date</td><td>{{.Date}} {{.Time}}</td></tr>
  <tr><td>Location</td><td>{{.Address}}</td></tr>
  <tr><td>Amount</td><td>&#8358;{{.Amount}}</td></tr>
</table>
<p>- Hustlaa Team</p>`))

type bookingEmailData struct {
	Name        string
	Intro       string
	BookingID   int64
	ServiceName string
	Date        string
	Time        string
	Address     string
	Amount      string
}

// Mailer ставит письма о бронировании в очередь Redis. Отправку выполняет MailWorker.
type Mailer struct {
	redis    *redis.Client
	contacts ContactsRepository
	l        *logrus.Entry
}

func NewMailer(rdb *redis.Client, u uow.UOW, l *logrus.Logger) (*Mailer, error) {
	contacts, err := uow.GetRepositoryAs[ContactsRepository](u, repoargs.BookingRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &Mailer{
		redis:    rdb,
		contacts: contacts,
		l:        l.WithFields(logrus.Fields{"component": "notify", "module": "mailer"}),
	}, nil
}

// SendBookingEmail ставит в очередь по письму клиенту и ремесленнику.
func (m *Mailer) SendBookingEmail(ctx context.Context, bookingID int64, title, intro string) error {
	contacts, err := m.contacts.FindContacts(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("booking %d contacts: %w", bookingID, err)
	}

	recipients := []struct{ email, name string }{
		{contacts.CustomerEmail, contacts.CustomerFirstName},
		{contacts.ArtisanEmail, contacts.ArtisanFirstName},
	}

	var errs []error
	for _, r := range recipients {
		if r.email == "" {
			continue
		}
		body, renderErr := renderBookingEmail(contacts, r.name, intro)
		if renderErr != nil {
			return renderErr
		}
		errs = append(errs, m.Send(ctx, r.email, r.name, title, body))
	}
	return errors.Join(errs...)
}

// Send ставит письмо в очередь.
func (m *Mailer) Send(ctx context.Context, to, name, subject, body string) error {
	data, err := json.Marshal(EmailJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err = m.redis.LPush(ctx, QueueKey, string(data)).Err(); err != nil {
		return fmt.Errorf("queue email to %s: %w", to, err)
	}
	m.l.WithField("to", to).WithField("subject", subject).Debug("email queued")
	return nil
}

func renderBookingEmail(c *domain.BookingContacts, name, intro string) (string, error) {
	var buf bytes.Buffer
	err := bookingEmailTemplate.Execute(&buf, bookingEmailData{
		Name:        name,
		Intro:       intro,
		BookingID:   c.BookingID,
		ServiceName: c.ServiceName,
		Date:        c.BookingDate.Format("Mon, Jan 2 2006"),
		Time:        c.BookingTime,
		Address:     c.LocationAddress,
		Amount:      c.TotalAmount.StringFixed(2),
	})
	if err != nil {
		return "", fmt.Errorf("render booking email: %w", err)
	}
	return buf.String(), nil
}
