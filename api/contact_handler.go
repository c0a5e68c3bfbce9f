package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

const notifyTimeout = 30 * time.Second

type contactHandler struct {
	resourceHandler[models.Contact, models.ContactInput, models.ContactPatch]
	contactRepo *database.ContactRepo
}

// newContactHandler notifies the owner about each stored message when a
// notifier is configured. Notification never delays or fails the request.
func newContactHandler(contactRepo *database.ContactRepo, notifier services.ContactNotifier) contactHandler {
	resource := newResourceHandler[models.Contact, models.ContactInput, models.ContactPatch]("contact", contactRepo, models.ContactInput.Contact)
	if notifier != nil {
		resource = resource.onCreate(func(contact models.Contact) {
			services.NotifyInBackground(notifier, contact, notifyTimeout)
		})
	}

	return contactHandler{
		resourceHandler: resource,
		contactRepo:     contactRepo,
	}
}

// markRead sets read=true whatever the request body says
func (h contactHandler) markRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		contact, err := h.contactRepo.MarkRead(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "contact", err))
			return
		}
		if contact == nil {
			h.responder.WriteError(w, errs.NewNotFound("contact"))
			return
		}
		h.responder.WriteJSON(w, contact)
	}
}
