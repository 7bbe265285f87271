// internal/questionnaire/errors.go
package questionnaire

import (
	"errors"

	apperrors "sake-reco/internal/common/errors"
)

// AsStandardError maps session errors onto the shared error codes. Other
// errors are returned unchanged.
func AsStandardError(err error, step Step, a Action) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnknownOption):
		return apperrors.NewUnknownOptionError(step.String(), a.Value)
	case errors.Is(err, ErrInvalidAction):
		return apperrors.NewInvalidStepActionError(step.String(), string(a.Type))
	default:
		return err
	}
}
