package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const maxSMSBody = 320

// MessageCreator is the part of the Twilio REST client used for SMS
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

func NewTwilioSender(accountSID, authToken string) MessageCreator {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return client.Api
}

// SMSNotifier texts a short summary of new messages to the site owner
type SMSNotifier struct {
	sender MessageCreator
	from   string
	to     string
}

func NewSMSNotifier(sender MessageCreator, from, to string) *SMSNotifier {
	return &SMSNotifier{sender: sender, from: from, to: to}
}

func (n *SMSNotifier) NotifyContact(ctx context.Context, contact models.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf("New message from %s <%s>: %s", contact.Name, contact.Email, contact.Subject)
	if runes := []rune(body); len(runes) > maxSMSBody {
		body = string(runes[:maxSMSBody-1]) + "…"
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.sender.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}
