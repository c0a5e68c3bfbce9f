package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, issuer *auth.Issuer, notifier services.ContactNotifier, images services.ImageStore, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo()),
		expertiseHandler: newResourceHandler[models.Expertise, models.ExpertiseInput, models.ExpertisePatch](
			"expertise", database.ExpertiseRepo(), models.ExpertiseInput.Expertise),
		testimonialHandler: newResourceHandler[models.Testimonial, models.TestimonialInput, models.TestimonialPatch](
			"testimonial", database.TestimonialRepo(), models.TestimonialInput.Testimonial),
		socialLinkHandler: newResourceHandler[models.SocialLink, models.SocialLinkInput, models.SocialLinkPatch](
			"social link", database.SocialLinkRepo(), models.SocialLinkInput.SocialLink),
		contactHandler: newContactHandler(database.ContactRepo(), notifier),
		authHandler:    newAuthHandler(database.UserRepo(), issuer),
		siteHandler:    newSiteHandler(database, startupTime),
		uploadHandler:  newUploadHandler(images),
	}
}
