package usecase

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("task use case persistence error")

// ErrNotFound indicates the task does not exist
var ErrNotFound = fmt.Errorf("task not found")

// ErrForbidden indicates the task belongs to another user
var ErrForbidden = fmt.Errorf("task belongs to another user")

// ErrValidation indicates invalid input
var ErrValidation = fmt.Errorf("invalid task input")

// validTaskID rejects IDs that cannot be a UUID so the database never
// sees a bad cast. A malformed ID surfaces as ErrNotFound, same as an
// unknown one.
func validTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
