package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// siteHandler serves the endpoints that are not tied to one entity
type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newSiteHandler(database database.Database, startupTime time.Time) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    database,
		startupTime: startupTime,
	}
}

func (h siteHandler) getIcons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, IconsResponse{
			Expertise: models.ExpertiseIcons(),
			Social:    models.SocialIcons(),
		})
	}
}

func (h siteHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats StatsResponse
		counters := []struct {
			name  string
			count func() (int64, error)
			dst   *int64
		}{
			{"projects", h.database.ProjectRepo().Count, &stats.Projects},
			{"expertise", h.database.ExpertiseRepo().Count, &stats.Expertise},
			{"testimonials", h.database.TestimonialRepo().Count, &stats.Testimonials},
			{"contacts", h.database.ContactRepo().Count, &stats.Messages},
			{"unread contacts", h.database.ContactRepo().CountUnread, &stats.UnreadMessages},
			{"social links", h.database.SocialLinkRepo().Count, &stats.SocialLinks},
		}

		for _, counter := range counters {
			n, err := counter.count()
			if err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("count", counter.name, err))
				return
			}
			*counter.dst = n
		}
		h.responder.WriteJSON(w, stats)
	}
}

// getHealth answers 200 while the store responds and 503 otherwise
func (h siteHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
			Database: "ok",
		}

		status := http.StatusOK
		if err := h.database.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Health check failed to reach database")
			response.Status = "degraded"
			response.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
		h.responder.WriteJSONStatus(w, status, response)
	}
}
