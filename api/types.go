package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	expertiseHandler   resourceHandler[models.Expertise, models.ExpertiseInput, models.ExpertisePatch]
	testimonialHandler resourceHandler[models.Testimonial, models.TestimonialInput, models.TestimonialPatch]
	socialLinkHandler  resourceHandler[models.SocialLink, models.SocialLinkInput, models.SocialLinkPatch]
	contactHandler     contactHandler
	authHandler        authHandler
	siteHandler        siteHandler
	uploadHandler      *uploadHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string                `json:"error"`
	Status  string                `json:"status"`
	Message string                `json:"message,omitempty"`
	Field   string                `json:"field,omitempty"`
	Details string                `json:"details,omitempty"`
	Fields  []errs.FieldViolation `json:"fields,omitempty"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public view of the admin account
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// IconsResponse lists the icon keys admin forms can offer
type IconsResponse struct {
	Expertise []models.IconKey `json:"expertise"`
	Social    []models.IconKey `json:"social"`
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

// HealthResponse reports liveness
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}
