package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Expertise is a skill area in the services section. Projects reference it
// through Project.Techfield.
type Expertise struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" gorm:"type:text;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Icon        string                      `json:"icon" gorm:"type:text;not null"`
	Skills      datatypes.JSONSlice[string] `json:"skills" gorm:"not null"`
	Order       int                         `json:"order" gorm:"not null;default:0"`
}

// TableName keeps the singular table name used by the site
func (Expertise) TableName() string {
	return "expertise"
}

type ExpertiseInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Icon        string   `json:"icon" validate:"required"`
	Skills      []string `json:"skills"`
	Order       int      `json:"order"`
}

func (in ExpertiseInput) Expertise() Expertise {
	return Expertise{
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Skills:      nonNil(in.Skills),
		Order:       in.Order,
	}
}

type ExpertisePatch struct {
	Title       *string      `json:"title" validate:"omitnil,min=1"`
	Description *string      `json:"description" validate:"omitnil,min=1"`
	Icon        *string      `json:"icon" validate:"omitnil,min=1"`
	Skills      OptionalList `json:"skills"`
	Order       *int         `json:"order"`
}

func (p ExpertisePatch) Columns() map[string]any {
	cols := map[string]any{}
	setString(cols, "title", p.Title)
	setString(cols, "description", p.Description)
	setString(cols, "icon", p.Icon)
	setList(cols, "skills", p.Skills)
	if p.Order != nil {
		cols["order"] = *p.Order
	}
	return cols
}
