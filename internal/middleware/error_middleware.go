package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every handler
// funnels its errors through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrInvalidRefreshToken):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid or expired refresh token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		// User row without its role row; data integrity problem, not a 404.
		respond(c, http.StatusInternalServerError, dto.ErrorCodeProfileNotFound, "Account profile is missing")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "Already enrolled in this course")
	case errors.Is(err, apperrors.ErrCertificateExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Certificate already issued")
	case errors.Is(err, apperrors.ErrCourseNotActive):
		respond(c, http.StatusConflict, dto.ErrorCodeValidationFailed, "Course is not open for enrollment")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrCertificateNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Certificate not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email format")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Password does not meet requirements")
	case errors.Is(err, apperrors.ErrPasswordMismatch):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Passwords do not match")
	case errors.Is(err, apperrors.ErrInvalidRole):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role")
	case errors.Is(err, apperrors.ErrValidationFailed):
		message := "Validation failed"
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			message = customErr.Message
		}
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message)
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}
