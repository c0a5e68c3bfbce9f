package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type SocialLinkRepo struct {
	db *gorm.DB
}

func NewSocialLinkRepo(db *gorm.DB) *SocialLinkRepo {
	return &SocialLinkRepo{db}
}

func (r *SocialLinkRepo) FindAll() ([]*models.SocialLink, error) {
	return findAll[models.SocialLink](r.db, byOrder)
}

func (r *SocialLinkRepo) FindByID(id uuid.UUID) (*models.SocialLink, error) {
	return findByID[models.SocialLink](r.db, id)
}

func (r *SocialLinkRepo) Add(link *models.SocialLink) error {
	link.ID = uuid.New()
	return r.db.Create(link).Error
}

func (r *SocialLinkRepo) Update(id uuid.UUID, patch models.SocialLinkPatch) (*models.SocialLink, error) {
	return updateByID[models.SocialLink](r.db, id, patch.Columns())
}

func (r *SocialLinkRepo) Delete(id uuid.UUID) (bool, error) {
	return deleteByID[models.SocialLink](r.db, id)
}

func (r *SocialLinkRepo) Count() (int64, error) {
	return count[models.SocialLink](r.db)
}
