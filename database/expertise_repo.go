package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ExpertiseRepo struct {
	db *gorm.DB
}

func NewExpertiseRepo(db *gorm.DB) *ExpertiseRepo {
	return &ExpertiseRepo{db}
}

func (r *ExpertiseRepo) FindAll() ([]*models.Expertise, error) {
	return findAll[models.Expertise](r.db, byOrder)
}

func (r *ExpertiseRepo) FindByID(id uuid.UUID) (*models.Expertise, error) {
	return findByID[models.Expertise](r.db, id)
}

func (r *ExpertiseRepo) Add(expertise *models.Expertise) error {
	expertise.ID = uuid.New()
	return r.db.Create(expertise).Error
}

func (r *ExpertiseRepo) Update(id uuid.UUID, patch models.ExpertisePatch) (*models.Expertise, error) {
	return updateByID[models.Expertise](r.db, id, patch.Columns())
}

// Delete removes an expertise entry. Projects still pointing at it make the
// store reject the delete with a foreign key error.
func (r *ExpertiseRepo) Delete(id uuid.UUID) (bool, error) {
	return deleteByID[models.Expertise](r.db, id)
}

func (r *ExpertiseRepo) Count() (int64, error) {
	return count[models.Expertise](r.db)
}
