package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db              *gorm.DB
	userRepo        *UserRepo
	projectRepo     *ProjectRepo
	expertiseRepo   *ExpertiseRepo
	testimonialRepo *TestimonialRepo
	contactRepo     *ContactRepo
	socialLinkRepo  *SocialLinkRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:              db,
		userRepo:        NewUserRepo(db),
		projectRepo:     NewProjectRepo(db),
		expertiseRepo:   NewExpertiseRepo(db),
		testimonialRepo: NewTestimonialRepo(db),
		contactRepo:     NewContactRepo(db),
		socialLinkRepo:  NewSocialLinkRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ExpertiseRepo() *ExpertiseRepo {
	return d.expertiseRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) SocialLinkRepo() *SocialLinkRepo {
	return d.socialLinkRepo
}

// Migrate creates or updates the six tables
func (d Database) Migrate() error {
	if err := d.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks that the store answers within the context deadline
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
