package session

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/polymap/internal/common"
)

// Validation failures. All of them match common.ErrValidation.
var (
	ErrInvalidCPF       = fmt.Errorf("%w: invalid CPF", common.ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, MinPasswordLength)
	ErrNameRequired     = fmt.Errorf("%w: name is required", common.ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid e-mail", common.ErrValidation)
)

var validationMessages = []struct {
	err error
	msg string
}{
	{ErrInvalidCPF, "Invalid CPF"},
	{ErrPasswordMismatch, "Passwords do not match"},
	{ErrPasswordTooShort, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)},
	{ErrNameRequired, "Name is required"},
	{ErrInvalidEmail, "Invalid e-mail"},
}

// Message returns the user-facing text for an error returned by the Manager.
// Unknown errors get the generic internal-error text; nil gets "".
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return v.msg
		}
	}
	switch {
	case errors.Is(err, common.ErrValidation):
		return "Invalid input"
	case errors.Is(err, common.ErrNotFound):
		return "User not found"
	case errors.Is(err, common.ErrBadCredentials):
		return "Incorrect password"
	case errors.Is(err, common.ErrConflict):
		return "An account with this CPF already exists"
	case errors.Is(err, common.ErrBusy):
		return "Please wait for the current request to finish"
	default:
		return "Internal error, please try again"
	}
}
