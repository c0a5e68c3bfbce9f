package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

// UserRepo holds the admin account. It does not enforce the single-admin
// rule; callers check AdminExists before RegisterAdmin.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// AdminExists reports whether any user row exists
func (r *UserRepo) AdminExists() (bool, error) {
	var users []models.User
	if err := r.db.Select("id").Limit(1).Find(&users).Error; err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

// RegisterAdmin hashes the password and stores a new user
func (r *UserRepo) RegisterAdmin(username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: strings.TrimSpace(username),
		Password: hash,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when username and password match, and nil
// when either the user is unknown or the password is wrong.
func (r *UserRepo) Authenticate(username, password string) (*models.User, error) {
	user, err := r.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		auth.BurnPassword(password)
		return nil, nil
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, nil
	}
	return user, nil
}

func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	return findByID[models.User](r.db, id)
}

func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
