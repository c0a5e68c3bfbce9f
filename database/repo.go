package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// byOrder sorts by the display order column. "order" is a reserved word, so
// it goes through clause.Column to get quoted by the dialect.
var byOrder = clause.OrderByColumn{Column: clause.Column{Name: "order"}}

func findAll[T any](db *gorm.DB, orderBy ...clause.OrderByColumn) ([]*T, error) {
	rows := []*T{}
	query := db
	for _, column := range orderBy {
		query = query.Order(column)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// findByID returns nil without an error when no row has the id
func findByID[T any](db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	err := db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// updateByID applies cols to the row and returns it re-read. A missing row
// gives nil without an error; an empty cols map only re-reads.
func updateByID[T any](db *gorm.DB, id uuid.UUID, cols map[string]any) (*T, error) {
	var updated *T
	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := findByID[T](tx, id)
		if err != nil || existing == nil {
			return err
		}

		if len(cols) > 0 {
			if err := tx.Model(new(T)).Where("id = ?", id).Updates(cols).Error; err != nil {
				return err
			}
			existing, err = findByID[T](tx, id)
			if err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	return updated, err
}

// deleteByID reports whether a row was removed
func deleteByID[T any](db *gorm.DB, id uuid.UUID) (bool, error) {
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func count[T any](db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(new(T)).Count(&n).Error
	return n, err
}
