package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

func (r *TestimonialRepo) FindAll() ([]*models.Testimonial, error) {
	return findAll[models.Testimonial](r.db, byOrder)
}

func (r *TestimonialRepo) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	return findByID[models.Testimonial](r.db, id)
}

func (r *TestimonialRepo) Add(testimonial *models.Testimonial) error {
	testimonial.ID = uuid.New()
	return r.db.Create(testimonial).Error
}

func (r *TestimonialRepo) Update(id uuid.UUID, patch models.TestimonialPatch) (*models.Testimonial, error) {
	return updateByID[models.Testimonial](r.db, id, patch.Columns())
}

func (r *TestimonialRepo) Delete(id uuid.UUID) (bool, error) {
	return deleteByID[models.Testimonial](r.db, id)
}

func (r *TestimonialRepo) Count() (int64, error) {
	return count[models.Testimonial](r.db)
}
