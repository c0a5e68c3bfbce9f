package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

func newContact() models.Contact {
	return models.Contact{
		ID:      uuid.New(),
		Name:    faker.Name(),
		Email:   faker.Email(),
		Subject: "Project inquiry",
		Message: "Hello <there>\nsecond line",
	}
}

func TestEmailNotifier(t *testing.T) {
	var got ResendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer("key", "Site <site@example.com>")
	mailer.endpoint = server.URL

	contact := newContact()
	require.NoError(t, NewEmailNotifier(mailer, "owner@example.com").NotifyContact(context.Background(), contact))

	assert.Equal(t, "Site <site@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "New message: Project inquiry", got.Subject)
	assert.Equal(t, contact.Email, got.ReplyTo)
	assert.Contains(t, got.Html, "Hello &lt;there&gt;<br>second line")
}

func TestResendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer("key", "bad")
	mailer.endpoint = server.URL

	err := mailer.Send(context.Background(), ResendEmailRequest{To: []string{"a@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")

	err = mailer.Send(context.Background(), ResendEmailRequest{})
	assert.Error(t, err)
}

type fakeTwilio struct {
	params *openapi.CreateMessageParams
	err    error
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = params
	return &openapi.ApiV2010Message{}, f.err
}

func TestSMSNotifier(t *testing.T) {
	sender := &fakeTwilio{}
	contact := newContact()
	contact.Subject = strings.Repeat("s", 500)

	require.NoError(t, NewSMSNotifier(sender, "+15550000000", "+15551111111").NotifyContact(context.Background(), contact))
	require.NotNil(t, sender.params)
	assert.Equal(t, "+15551111111", *sender.params.To)
	assert.Equal(t, "+15550000000", *sender.params.From)
	assert.Len(t, []rune(*sender.params.Body), maxSMSBody)

	sender.err = errors.New("boom")
	assert.Error(t, NewSMSNotifier(sender, "a", "b").NotifyContact(context.Background(), contact))
}

func TestNotifiersContinuePastFailures(t *testing.T) {
	var calls atomic.Int32
	ok := NotifierFunc(func(context.Context, models.Contact) error {
		calls.Add(1)
		return nil
	})
	failing := NotifierFunc(func(context.Context, models.Contact) error {
		calls.Add(1)
		return errors.New("down")
	})

	err := Notifiers{"a": ok, "b": failing, "c": ok}.NotifyContact(context.Background(), newContact())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b: down")
	assert.Equal(t, int32(3), calls.Load())

	assert.NoError(t, Notifiers{"a": ok}.NotifyContact(context.Background(), newContact()))
}

func TestNotifyInBackground(t *testing.T) {
	done := make(chan models.Contact, 1)
	contact := newContact()

	NotifyInBackground(NotifierFunc(func(ctx context.Context, c models.Contact) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		done <- c
		return nil
	}), contact, time.Second)

	select {
	case got := <-done:
		assert.Equal(t, contact.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}

	NotifyInBackground(nil, contact, time.Second)
}

func TestNotifiersFromConfig(t *testing.T) {
	assert.Nil(t, NotifiersFromConfig(config.FromMap(nil)))

	notifier := NotifiersFromConfig(config.FromMap(map[string]string{
		"RESEND_API_KEY":     "k",
		"RESEND_FROM_EMAIL":  "site@example.com",
		"NOTIFY_EMAIL":       "me@example.com",
		"TWILIO_ACCOUNT_SID": "AC123",
		"TWILIO_AUTH_TOKEN":  "t",
		"TWILIO_FROM_NUMBER": "+1555",
		"NOTIFY_PHONE":       "+1666",
	}))
	require.IsType(t, Notifiers{}, notifier)
	assert.Len(t, notifier.(Notifiers), 2)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, err := io.ReadAll(params.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, err
}

func TestS3ImageStore(t *testing.T) {
	client := &fakeS3{}
	store := NewS3ImageStore(client, "bucket", "eu-west-1", "")

	url, err := store.Put(context.Background(), "Photo.PNG", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)

	key := aws.ToString(client.input.Key)
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "https://bucket.s3.eu-west-1.amazonaws.com/"+key, url)
	assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
	assert.Equal(t, "png-bytes", client.body)

	cdn := NewS3ImageStore(client, "bucket", "eu-west-1", "https://cdn.example.com/")
	url, err = cdn.Put(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/uploads/"))
}

func TestImageStoreFromConfigDisabled(t *testing.T) {
	store, err := ImageStoreFromConfig(context.Background(), config.FromMap(nil))
	require.NoError(t, err)
	assert.Nil(t, store)
}
