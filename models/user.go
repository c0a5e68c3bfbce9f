package models

import "github.com/google/uuid"

// User is the site administrator. The site runs with a single admin; the
// registration endpoint refuses to create a second one.
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Username string    `json:"username" gorm:"type:text;not null;unique"`
	Password string    `json:"-" gorm:"type:text;not null"`
}

// Credentials is the login and registration payload
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// All lists every persisted model in dependency order (referenced tables first)
func All() []any {
	return []any{
		&User{},
		&Expertise{},
		&Project{},
		&Testimonial{},
		&Contact{},
		&SocialLink{},
	}
}
