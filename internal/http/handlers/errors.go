package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/service"
)

// statusFor maps service errors to a status code and client message. Unknown
// errors map to 500 with an empty message; callers supply their own.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found."
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, "Product not found."
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden, "You are not authorized to update this order."
	case errors.Is(err, auth.ErrInactiveAccount):
		return http.StatusForbidden, "Your account is inactive. Please contact support."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthenticated."
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, msgQuantityMin
	default:
		return http.StatusInternalServerError, ""
	}
}

// respondError writes the mapped error. Internal errors are logged and
// answered with fallback.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(fallback, "error", err, "method", r.Method, "path", r.URL.Path)
		message = fallback
	}
	s.respondMessage(w, status, message)
}

func (s *Server) respondValidation(w http.ResponseWriter, errs ValidationErrors, order ...string) {
	s.respond(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Message: errs.first(order...),
		Errors:  errs,
	})
}
