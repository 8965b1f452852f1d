package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/auth"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/payroll"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/user"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to wire responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		InvalidArgument(w, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		Unauthenticated(w, "Authentication required")
	case errors.Is(err, user.ErrElevatedAccessRequired):
		PermissionDenied(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		// A caller without a profile has no roles either.
		PermissionDenied(w, user.ErrElevatedAccessRequired.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunConflict):
		Conflict(w, "Payroll run was modified concurrently, retry the recalculation")
	case errors.Is(err, rate.ErrEmployeeIDRequired):
		InvalidArgument(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unexpected error handling request", "error", err)
		Internal(w)
	}
}
