package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type projectHandler struct {
	resourceHandler[models.Project, models.ProjectInput, models.ProjectPatch]
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	return projectHandler{
		resourceHandler: newResourceHandler[models.Project, models.ProjectInput, models.ProjectPatch]("project", projectRepo, models.ProjectInput.Project),
		projectRepo:     projectRepo,
	}
}

// getProjectsByTechfield lists the projects linked to one expertise entry.
// A techfield that is not a UUID matches nothing.
func (h projectHandler) getProjectsByTechfield() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techfield, err := uuid.Parse(chi.URLParam(r, "techfield"))
		if err != nil {
			h.responder.WriteJSON(w, []*models.Project{})
			return
		}

		projects, err := h.projectRepo.FindByTechfield(techfield)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "projects by techfield", err))
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}
