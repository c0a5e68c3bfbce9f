package models

import "github.com/google/uuid"

// Testimonial is a client quote shown in the testimonials section
type Testimonial struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name    string    `json:"name" gorm:"type:text;not null"`
	Title   string    `json:"title" gorm:"type:text;not null"`
	Company string    `json:"company" gorm:"type:text;not null"`
	Content string    `json:"content" gorm:"type:text;not null"`
	Avatar  string    `json:"avatar" gorm:"type:text;not null;default:''"`
	Order   int       `json:"order" gorm:"not null;default:0"`
}

type TestimonialInput struct {
	Name    string `json:"name" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Company string `json:"company" validate:"required"`
	Content string `json:"content" validate:"required"`
	Avatar  string `json:"avatar"`
	Order   int    `json:"order"`
}

func (in TestimonialInput) Testimonial() Testimonial {
	return Testimonial{
		Name:    in.Name,
		Title:   in.Title,
		Company: in.Company,
		Content: in.Content,
		Avatar:  in.Avatar,
		Order:   in.Order,
	}
}

type TestimonialPatch struct {
	Name    *string `json:"name" validate:"omitnil,min=1"`
	Title   *string `json:"title" validate:"omitnil,min=1"`
	Company *string `json:"company" validate:"omitnil,min=1"`
	Content *string `json:"content" validate:"omitnil,min=1"`
	Avatar  *string `json:"avatar"`
	Order   *int    `json:"order"`
}

func (p TestimonialPatch) Columns() map[string]any {
	cols := map[string]any{}
	setString(cols, "name", p.Name)
	setString(cols, "title", p.Title)
	setString(cols, "company", p.Company)
	setString(cols, "content", p.Content)
	setString(cols, "avatar", p.Avatar)
	if p.Order != nil {
		cols["order"] = *p.Order
	}
	return cols
}
