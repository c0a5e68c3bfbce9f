// Package client is a Go client for the portfolio API. Reads go through a
// keyed cache that successful writes invalidate; admin calls carry the
// session token when one is held.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const (
	projectsPath     = "/api/projects"
	expertisePath    = "/api/expertise"
	testimonialsPath = "/api/testimonials"
	contactsPath     = "/api/contacts"
	socialLinksPath  = "/api/social-links"
	statsPath        = "/api/stats"
)

// Fields is a partial update body; only the keys present are changed
type Fields map[string]any

type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	session *Session
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSession shares a session between clients
func WithSession(session *Session) Option {
	return func(c *Client) {
		c.session = session
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   NewCache(),
		session: &Session{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Cache() *Cache {
	return c.cache
}

// Projects

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	return cachedGet[[]models.Project](ctx, c, projectsPath)
}

func (c *Client) Project(ctx context.Context, id uuid.UUID) (models.Project, error) {
	return cachedGet[models.Project](ctx, c, itemPath(projectsPath, id))
}

func (c *Client) ProjectsByTechfield(ctx context.Context, techfield uuid.UUID) ([]models.Project, error) {
	return cachedGet[[]models.Project](ctx, c, projectsPath+"/by-techfield/"+techfield.String())
}

func (c *Client) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	return mutate[models.Project](ctx, c, http.MethodPost, projectsPath, in, projectsPath)
}

func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, fields Fields) (models.Project, error) {
	return mutate[models.Project](ctx, c, http.MethodPatch, itemPath(projectsPath, id), fields, projectsPath)
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, itemPath(projectsPath, id), projectsPath)
}

// Expertise

func (c *Client) Expertise(ctx context.Context) ([]models.Expertise, error) {
	return cachedGet[[]models.Expertise](ctx, c, expertisePath)
}

func (c *Client) ExpertiseEntry(ctx context.Context, id uuid.UUID) (models.Expertise, error) {
	return cachedGet[models.Expertise](ctx, c, itemPath(expertisePath, id))
}

func (c *Client) CreateExpertise(ctx context.Context, in models.ExpertiseInput) (models.Expertise, error) {
	return mutate[models.Expertise](ctx, c, http.MethodPost, expertisePath, in, expertisePath)
}

func (c *Client) UpdateExpertise(ctx context.Context, id uuid.UUID, fields Fields) (models.Expertise, error) {
	return mutate[models.Expertise](ctx, c, http.MethodPatch, itemPath(expertisePath, id), fields, expertisePath)
}

// DeleteExpertise also drops cached projects, whose techfield grouping may change
func (c *Client) DeleteExpertise(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, itemPath(expertisePath, id), expertisePath, projectsPath)
}

// Testimonials

func (c *Client) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return cachedGet[[]models.Testimonial](ctx, c, testimonialsPath)
}

func (c *Client) Testimonial(ctx context.Context, id uuid.UUID) (models.Testimonial, error) {
	return cachedGet[models.Testimonial](ctx, c, itemPath(testimonialsPath, id))
}

func (c *Client) CreateTestimonial(ctx context.Context, in models.TestimonialInput) (models.Testimonial, error) {
	return mutate[models.Testimonial](ctx, c, http.MethodPost, testimonialsPath, in, testimonialsPath)
}

func (c *Client) UpdateTestimonial(ctx context.Context, id uuid.UUID, fields Fields) (models.Testimonial, error) {
	return mutate[models.Testimonial](ctx, c, http.MethodPatch, itemPath(testimonialsPath, id), fields, testimonialsPath)
}

func (c *Client) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, itemPath(testimonialsPath, id), testimonialsPath)
}

// Social links

func (c *Client) SocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	return cachedGet[[]models.SocialLink](ctx, c, socialLinksPath)
}

func (c *Client) SocialLink(ctx context.Context, id uuid.UUID) (models.SocialLink, error) {
	return cachedGet[models.SocialLink](ctx, c, itemPath(socialLinksPath, id))
}

func (c *Client) CreateSocialLink(ctx context.Context, in models.SocialLinkInput) (models.SocialLink, error) {
	return mutate[models.SocialLink](ctx, c, http.MethodPost, socialLinksPath, in, socialLinksPath)
}

func (c *Client) UpdateSocialLink(ctx context.Context, id uuid.UUID, fields Fields) (models.SocialLink, error) {
	return mutate[models.SocialLink](ctx, c, http.MethodPatch, itemPath(socialLinksPath, id), fields, socialLinksPath)
}

func (c *Client) DeleteSocialLink(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, itemPath(socialLinksPath, id), socialLinksPath)
}

// Contacts

func (c *Client) Contacts(ctx context.Context) ([]models.Contact, error) {
	return cachedGet[[]models.Contact](ctx, c, contactsPath)
}

func (c *Client) Contact(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	return cachedGet[models.Contact](ctx, c, itemPath(contactsPath, id))
}

// SendContact submits the public contact form
func (c *Client) SendContact(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	return mutate[models.Contact](ctx, c, http.MethodPost, contactsPath, in, contactsPath)
}

func (c *Client) MarkContactRead(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	return mutate[models.Contact](ctx, c, http.MethodPatch, itemPath(contactsPath, id)+"/read", nil, contactsPath)
}

func (c *Client) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, itemPath(contactsPath, id), contactsPath)
}

// Site

func (c *Client) Stats(ctx context.Context) (StatsResponse, error) {
	return cachedGet[StatsResponse](ctx, c, statsPath)
}

func (c *Client) Icons(ctx context.Context) (IconsResponse, error) {
	return cachedGet[IconsResponse](ctx, c, "/api/icons")
}

func (c *Client) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := c.call(ctx, http.MethodGet, "/api/admin-exists", nil, &exists)
	return exists, err
}

// StatsResponse holds the dashboard counters
type StatsResponse struct {
	Projects       int64 `json:"projects"`
	Expertise      int64 `json:"expertise"`
	Testimonials   int64 `json:"testimonials"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unreadMessages"`
	SocialLinks    int64 `json:"socialLinks"`
}

// IconsResponse lists the icon keys the server knows
type IconsResponse struct {
	Expertise []models.IconKey `json:"expertise"`
	Social    []models.IconKey `json:"social"`
}

func itemPath(collection string, id uuid.UUID) string {
	return collection + "/" + id.String()
}

func cachedGet[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	data, err := c.cache.Get(ctx, path, func(ctx context.Context) ([]byte, error) {
		return c.roundTrip(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// mutate sends a write and, once it succeeds, drops the cached entries under
// the given prefixes along with the dashboard counters
func mutate[T any](ctx context.Context, c *Client, method, path string, body any, invalidate ...string) (T, error) {
	var out T
	if err := c.call(ctx, method, path, body, &out); err != nil {
		return out, err
	}
	c.cache.Invalidate(append(invalidate, statsPath)...)
	return out, nil
}

func (c *Client) remove(ctx context.Context, path string, invalidate ...string) error {
	if err := c.call(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(append(invalidate, statsPath)...)
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	data, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// roundTrip performs one request. Non-2xx answers become *errs.ApiErr with
// the server's status, message and field violations.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp.StatusCode, data)
	}
	return data, nil
}

type errorBody struct {
	Error   string                `json:"error"`
	Details string                `json:"details"`
	Fields  []errs.FieldViolation `json:"fields"`
}

func responseError(status int, data []byte) error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(status)
	}

	apiErr := errs.NewApiErr(status, body.Error)
	apiErr.Details = body.Details
	apiErr.Violations = body.Fields
	return apiErr
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	return errs.StatusOf(err) == http.StatusNotFound
}
