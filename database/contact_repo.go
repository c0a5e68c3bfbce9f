package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var byCreatedAt = clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}

// ContactRepo stores contact form messages. Messages are append-only apart
// from the read flag.
type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns all messages, oldest first
func (r *ContactRepo) FindAll() ([]*models.Contact, error) {
	return findAll[models.Contact](r.db, byCreatedAt)
}

func (r *ContactRepo) FindByID(id uuid.UUID) (*models.Contact, error) {
	return findByID[models.Contact](r.db, id)
}

// Add stores a new message as unread; gorm stamps CreatedAt
func (r *ContactRepo) Add(contact *models.Contact) error {
	contact.ID = uuid.New()
	contact.Read = false
	return r.db.Create(contact).Error
}

func (r *ContactRepo) Update(id uuid.UUID, patch models.ContactPatch) (*models.Contact, error) {
	return updateByID[models.Contact](r.db, id, patch.Columns())
}

// MarkRead sets the read flag. Calling it on a read message is a no-op.
func (r *ContactRepo) MarkRead(id uuid.UUID) (*models.Contact, error) {
	read := true
	return r.Update(id, models.ContactPatch{Read: &read})
}

func (r *ContactRepo) Delete(id uuid.UUID) (bool, error) {
	return deleteByID[models.Contact](r.db, id)
}

func (r *ContactRepo) Count() (int64, error) {
	return count[models.Contact](r.db)
}

func (r *ContactRepo) CountUnread() (int64, error) {
	var n int64
	err := r.db.Model(&models.Contact{}).Where(map[string]any{"read": false}).Count(&n).Error
	return n, err
}
