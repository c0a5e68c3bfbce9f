package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a message submitted through the public contact form. Apart from
// the read flag it is never modified after insertion.
type Contact struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index:idx_contact_created_at"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (in ContactInput) Contact() Contact {
	return Contact{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
}

// ContactPatch only ever touches the read flag
type ContactPatch struct {
	Read *bool `json:"read"`
}

func (p ContactPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Read != nil {
		cols["read"] = *p.Read
	}
	return cols
}
