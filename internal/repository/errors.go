package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"recommendation-service/internal/models"
)

const pqUniqueViolation = "23505"

// mapWriteError turns a PostgreSQL unique violation into a ConflictError and
// wraps anything else.
func mapWriteError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return models.NewConflict(resource, pqErr.Constraint)
	}
	return fmt.Errorf("failed to write %s: %w", resource, err)
}
