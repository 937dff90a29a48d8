package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/acolombo/taskdeck/pkg/identity"
)

// Generic GORM helpers shared by the account and task store files. They are
// package-internal and operate on the raw *gorm.DB so they stay decoupled
// from GORMStore. Each helper handles context propagation, not-found error
// conversion, and unique constraint detection.

// getByField retrieves a single record of type T by matching field=value.
// It converts gorm.ErrRecordNotFound to the provided notFoundErr for
// consistent domain error mapping.
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// createWithID generates a canonical identity for the entity if it has no ID,
// then creates it in the database. The idSetter callback sets the generated ID
// on the entity. Unique constraint violations are converted to dupErr.
func createWithID[T any](db *gorm.DB, ctx context.Context, entity *T, idSetter func(*T, string), currentID string, dupErr error) (string, error) {
	id := currentID
	if id == "" {
		id = identity.New().String()
		idSetter(entity, id)
	}
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return "", dupErr
		}
		return "", err
	}
	return id, nil
}

// deleteByFields deletes records of type T matching all field=value pairs.
// Returns notFoundErr if no rows were affected.
func deleteByFields[T any](db *gorm.DB, ctx context.Context, conds map[string]any, notFoundErr error) error {
	var zero T
	q := db.WithContext(ctx)
	for field, value := range conds {
		q = q.Where(field+" = ?", value)
	}
	result := q.Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
