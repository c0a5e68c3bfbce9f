package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by their display order
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	return findAll[models.Project](r.db, byOrder)
}

// FindByTechfield returns the projects grouped under an expertise entry
func (r *ProjectRepo) FindByTechfield(techfield uuid.UUID) ([]*models.Project, error) {
	return findAll[models.Project](r.db.Where("techfield = ?", techfield), byOrder)
}

// FindByID returns a project by its ID, or nil if there is none
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	return findByID[models.Project](r.db, id)
}

// Add assigns a new ID and inserts the project
func (r *ProjectRepo) Add(project *models.Project) error {
	project.ID = uuid.New()
	return r.db.Create(project).Error
}

// Update applies a partial update and returns the stored project, or nil if
// there is none
func (r *ProjectRepo) Update(id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	return updateByID[models.Project](r.db, id, patch.Columns())
}

// Delete removes a project and reports whether it existed
func (r *ProjectRepo) Delete(id uuid.UUID) (bool, error) {
	return deleteByID[models.Project](r.db, id)
}

func (r *ProjectRepo) Count() (int64, error) {
	return count[models.Project](r.db)
}
