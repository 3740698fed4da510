package usecase

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// ErrNotFound indicates the conversation does not exist for this user.
// Foreign conversations surface the same way on purpose.
var ErrNotFound = fmt.Errorf("conversation not found")

// ErrValidation indicates invalid chat input
var ErrValidation = fmt.Errorf("invalid chat input")

// ErrEngineTimeout indicates the engine did not answer within the turn deadline
var ErrEngineTimeout = fmt.Errorf("engine timed out")

// ErrEngineFailure indicates the engine failed for any other reason
var ErrEngineFailure = fmt.Errorf("engine failed")

// validConversationID rejects IDs that cannot be a UUID so the database
// never sees a bad cast. A malformed ID surfaces as ErrNotFound, same
// as an unknown one.
func validConversationID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
