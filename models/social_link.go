package models

import "github.com/google/uuid"

// SocialLink is a profile link rendered in the footer and navigation
type SocialLink struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Platform string    `json:"platform" gorm:"type:text;not null"`
	URL      string    `json:"url" gorm:"type:text;not null"`
	Icon     string    `json:"icon" gorm:"type:text;not null"`
	Order    int       `json:"order" gorm:"not null;default:0"`
}

type SocialLinkInput struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Icon     string `json:"icon" validate:"required"`
	Order    int    `json:"order"`
}

func (in SocialLinkInput) SocialLink() SocialLink {
	return SocialLink{
		Platform: in.Platform,
		URL:      in.URL,
		Icon:     in.Icon,
		Order:    in.Order,
	}
}

type SocialLinkPatch struct {
	Platform *string `json:"platform" validate:"omitnil,min=1"`
	URL      *string `json:"url" validate:"omitnil,min=1"`
	Icon     *string `json:"icon" validate:"omitnil,min=1"`
	Order    *int    `json:"order"`
}

func (p SocialLinkPatch) Columns() map[string]any {
	cols := map[string]any{}
	setString(cols, "platform", p.Platform)
	setString(cols, "url", p.URL)
	setString(cols, "icon", p.Icon)
	if p.Order != nil {
		cols["order"] = *p.Order
	}
	return cols
}
