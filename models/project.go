package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project shown on the public site
type Project struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" gorm:"type:text;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Image       string                      `json:"image" gorm:"type:text;not null"`
	TechStack   datatypes.JSONSlice[string] `json:"techStack" gorm:"not null"`
	Features    datatypes.JSONSlice[string] `json:"features" gorm:"not null"`
	LiveURL     string                      `json:"liveUrl" gorm:"type:text;not null;default:''"`
	GithubURL   string                      `json:"githubUrl" gorm:"type:text;not null;default:''"`
	Order       int                         `json:"order" gorm:"not null;default:0"`
	Techfield   *uuid.UUID                  `json:"techfield" gorm:"type:uuid;index:idx_project_techfield"`

	Expertise *Expertise `json:"-" gorm:"foreignKey:Techfield;references:ID"`
}

// ProjectInput is the create payload accepted for a project
type ProjectInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Image       string     `json:"image" validate:"required"`
	TechStack   []string   `json:"techStack"`
	Features    []string   `json:"features"`
	LiveURL     string     `json:"liveUrl"`
	GithubURL   string     `json:"githubUrl"`
	Order       int        `json:"order"`
	Techfield   NullableID `json:"techfield"`
}

// Project builds the row to insert. The caller assigns the ID.
func (in ProjectInput) Project() Project {
	return Project{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		TechStack:   nonNil(in.TechStack),
		Features:    nonNil(in.Features),
		LiveURL:     in.LiveURL,
		GithubURL:   in.GithubURL,
		Order:       in.Order,
		Techfield:   in.Techfield.Value,
	}
}

// ProjectPatch is a partial project update; only present fields change
type ProjectPatch struct {
	Title       *string      `json:"title" validate:"omitnil,min=1"`
	Description *string      `json:"description" validate:"omitnil,min=1"`
	Image       *string      `json:"image" validate:"omitnil,min=1"`
	TechStack   OptionalList `json:"techStack"`
	Features    OptionalList `json:"features"`
	LiveURL     *string      `json:"liveUrl"`
	GithubURL   *string      `json:"githubUrl"`
	Order       *int         `json:"order"`
	Techfield   NullableID   `json:"techfield"`
}

// Columns returns the column assignments for the fields present in the patch
func (p ProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	setString(cols, "title", p.Title)
	setString(cols, "description", p.Description)
	setString(cols, "image", p.Image)
	setList(cols, "tech_stack", p.TechStack)
	setList(cols, "features", p.Features)
	setString(cols, "live_url", p.LiveURL)
	setString(cols, "github_url", p.GithubURL)
	if p.Order != nil {
		cols["order"] = *p.Order
	}
	if p.Techfield.Set {
		cols["techfield"] = p.Techfield.column()
	}
	return cols
}
