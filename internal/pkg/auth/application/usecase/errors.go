package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("auth use case persistence error")

// ErrEmailTaken indicates the email is already registered
var ErrEmailTaken = fmt.Errorf("email already registered")

// ErrInvalidCredentials indicates login failed. Unknown email and wrong
// password produce the same error so probes learn nothing.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// ErrValidation indicates invalid input
var ErrValidation = fmt.Errorf("invalid auth input")
