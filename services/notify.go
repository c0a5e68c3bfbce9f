package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ContactNotifier tells the site owner about a new contact message
type ContactNotifier interface {
	NotifyContact(ctx context.Context, contact models.Contact) error
}

// NotifierFunc adapts a function to ContactNotifier
type NotifierFunc func(ctx context.Context, contact models.Contact) error

func (f NotifierFunc) NotifyContact(ctx context.Context, contact models.Contact) error {
	return f(ctx, contact)
}

// EmailNotifier mails new messages to a fixed address, replying to the sender
type EmailNotifier struct {
	mailer *ResendMailer
	to     string
}

func NewEmailNotifier(mailer *ResendMailer, to string) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, to: to}
}

func (n *EmailNotifier) NotifyContact(ctx context.Context, contact models.Contact) error {
	body := fmt.Sprintf(
		"<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		strings.ReplaceAll(html.EscapeString(contact.Message), "\n", "<br>"),
	)
	return n.mailer.Send(ctx, ResendEmailRequest{
		To:      []string{n.to},
		Subject: "New message: " + contact.Subject,
		Html:    body,
		ReplyTo: contact.Email,
	})
}

// Notifiers sends to every member concurrently. A failing member does not
// stop the others; the returned error joins every failure.
type Notifiers map[string]ContactNotifier

func (n Notifiers) NotifyContact(ctx context.Context, contact models.Contact) error {
	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []error
	)

	for name, notifier := range n {
		g.Go(func() error {
			if err := notifier.NotifyContact(ctx, contact); err != nil {
				log.Error().Err(err).Str("notifier", name).Str("contactId", contact.ID.String()).Msg("Contact notification failed")
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				return nil
			}
			log.Info().Str("notifier", name).Str("contactId", contact.ID.String()).Msg("Contact notification sent")
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(failures...)
}

// NotifyInBackground runs notifier detached from the request that stored the
// contact, bounded by timeout.
func NotifyInBackground(notifier ContactNotifier, contact models.Contact, timeout time.Duration) {
	if notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := notifier.NotifyContact(ctx, contact); err != nil {
			log.Warn().Err(err).Str("contactId", contact.ID.String()).Msg("Some contact notifications failed")
		}
	}()
}

// NotifiersFromConfig builds the configured notifiers. It returns nil when
// neither email nor SMS is configured.
func NotifiersFromConfig(c *config.Config) ContactNotifier {
	notifiers := Notifiers{}

	apiKey := config.GetString(c, "RESEND_API_KEY", "")
	from := config.GetString(c, "RESEND_FROM_EMAIL", "")
	to := config.GetString(c, "NOTIFY_EMAIL", "")
	if apiKey != "" && from != "" && to != "" {
		notifiers["email"] = NewEmailNotifier(NewResendMailer(apiKey, from), to)
	}

	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	fromNumber := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	phone := config.GetString(c, "NOTIFY_PHONE", "")
	if sid != "" && token != "" && fromNumber != "" && phone != "" {
		notifiers["sms"] = NewSMSNotifier(NewTwilioSender(sid, token), fromNumber, phone)
	}

	if len(notifiers) == 0 {
		log.Info().Msg("No contact notifiers configured")
		return nil
	}
	return notifiers
}
