package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/http/middleware"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func (s *Server) respondStatusError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, StatusResponse[any]{Status: statusError, Message: message})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "email and password"
// @Success 200 {object} StatusResponse[LoginResult]
// @Failure 401 {object} StatusResponse[any] "Invalid email or password"
// @Failure 403 {object} StatusResponse[any] "Inactive account"
// @Failure 422 {object} ValidationErrorResponse
// @Failure 429 {object} MessageResponse "Too many attempts"
// @Router /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondStatusError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := validateLogin(req); len(errs) > 0 {
		s.respondValidation(w, errs, "email", "password")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailNotFound):
		errs := ValidationErrors{}
		errs.add("email", msgEmailNotFound)
		s.respondValidation(w, errs)
		return
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInactiveAccount):
		status, message := statusFor(err)
		s.respondStatusError(w, status, message)
		return
	case err != nil:
		s.logger.Error("login error", "error", err)
		s.respondStatusError(w, http.StatusInternalServerError, "An error occurred while trying to log in.")
		return
	}

	s.respond(w, http.StatusOK, StatusResponse[LoginResult]{
		Status:  statusSuccess,
		Message: "Login successful",
		Data:    LoginResult{Token: token, User: toUserSummary(user)},
	})
}

// LogoutHandler godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusResponse[string]
// @Failure 401 {object} MessageResponse
// @Router /logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		s.respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := s.auth.Logout(r.Context(), claims); err != nil {
		s.logger.Error("logout error", "error", err)
		s.respondStatusError(w, http.StatusInternalServerError, "An error occurred while trying to log out.")
		return
	}

	s.respond(w, http.StatusOK, StatusResponse[string]{
		Status:  statusSuccess,
		Message: "Logout successful",
		Data:    "User logged out successfully.",
	})
}

// RefreshTokenHandler godoc
// @Summary Revoke the current token and issue a new one
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusResponse[TokenResult]
// @Failure 401 {object} MessageResponse
// @Failure 403 {object} StatusResponse[any] "Inactive account"
// @Router /refresh-token [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		s.respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	token, err := s.auth.Refresh(r.Context(), claims)
	if err != nil {
		status, message := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("token refresh error", "error", err)
			message = "An error occurred while trying to refresh the token."
		}
		s.respondStatusError(w, status, message)
		return
	}

	s.respond(w, http.StatusOK, StatusResponse[TokenResult]{
		Status:  statusSuccess,
		Message: "Token refreshed successfully",
		Data:    TokenResult{Token: token},
	})
}
