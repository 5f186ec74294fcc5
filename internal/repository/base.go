// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"medialane/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrDuplicate is returned when a write would create a second row for a
	// pair that must be unique (like, bookmark, share, playlist entry).
	ErrDuplicate = errors.New("repository: duplicate")
	// ErrNoChange is returned by flag toggles when the row already holds the
	// requested value. Nothing is written.
	ErrNoChange = errors.New("repository: no change")
	// ErrNotFound is returned by writes whose target row does not exist.
	ErrNotFound = errors.New("repository: not found")
)

// Status filters content lists by their active flag.
type Status string

const (
	StatusAll      Status = ""
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus maps a query parameter to a Status. Unknown values list everything.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive
	case StatusInactive:
		return StatusInactive
	}
	return StatusAll
}

func (s Status) apply(db *gorm.DB, column string) *gorm.DB {
	switch s {
	case StatusActive:
		return db.Where(column+" = ?", true)
	case StatusInactive:
		return db.Where(column+" = ?", false)
	}
	return db
}

func forUpdate() clause.Expression {
	return clause.Locking{Strength: "UPDATE"}
}

// likeClause is the portable case-insensitive substring match for column.
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '\\'"
}

// likePattern builds the argument for likeClause.
func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return "%" + s + "%"
}

// tagPattern matches one element of a JSON-serialized tag list.
func tagPattern(tag string) string {
	return likePattern(`"` + strings.TrimSpace(tag) + `"`)
}

// first loads one row into dest, mapping "no rows" to found == false.
func first(db *gorm.DB, dest any, conds ...any) (bool, error) {
	err := db.Take(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// errMiss keeps a missing row out of the cache.
var errMiss = errors.New("repository: no row")

// firstOrMiss is first for cache loaders: a missing row becomes errMiss.
func firstOrMiss(db *gorm.DB, dest any, conds ...any) error {
	found, err := first(db, dest, conds...)
	if err == nil && !found {
		return errMiss
	}
	return err
}

// setFlag flips a boolean column on the row with id inside a transaction
// holding a row lock. It returns ErrNotFound for a missing row and
// ErrNoChange when the column already equals value.
func setFlag(ctx context.Context, db *gorm.DB, model any, id uint, column string, value bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []bool
		if err := tx.Model(model).Clauses(forUpdate()).
			Where("id = ?", id).
			Pluck(column, &current).Error; err != nil {
			return err
		}
		if len(current) == 0 {
			return ErrNotFound
		}
		if current[0] == value {
			return ErrNoChange
		}
		return tx.Model(model).Where("id = ?", id).Update(column, value).Error
	})
}

// translateWriteError maps unique-constraint violations to ErrDuplicate.
func translateWriteError(err error) error {
	if models.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
