package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes shared by handlers and middleware.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeInternal             = "INTERNAL_SERVER_ERROR"
	CodeAuthorizationMissing = "AUTHORIZATION_MISSING"
	CodeTokenInvalidExpired  = "TOKEN_INVALID_EXPIRED"
	CodeLoginRequired        = "LOGIN_REQUIRED"
	CodeSuperAdminForbidden  = "SUPER_ADMIN_FORBIDDEN"
	CodeAdminForbidden       = "ADMIN_FORBIDDEN"
	CodeClientForbidden      = "CLIENT_FORBIDDEN"
	CodePasswordRequired     = "PASSWORD_REQUIRED"
	CodePasswordInvalid      = "PASSWORD_INVALID"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAccountBlocked       = "ACCOUNT_BLOCKED"
	CodeOwnershipRequired    = "OWNERSHIP_REQUIRED"
)

// FieldError is a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the uniform JSON body returned by every endpoint.
type Envelope struct {
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// AppError represents a custom application error carrying its HTTP status.
type AppError struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a single client-side input problem.
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
	}
}

// NewFieldErrors reports the full list of failed field rules.
func NewFieldErrors(fields []FieldError) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewUnauthorizedError reports a missing or unusable credential.
func NewUnauthorizedError(code, message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Code:    code,
		Message: message,
	}
}

// NewForbiddenError reports a verified identity lacking a capability.
func NewForbiddenError(code, message string) *AppError {
	return &AppError{
		Status:  fiber.StatusForbidden,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError reports a missing entity. The code is derived from the
// resource name, e.g. "Article" -> ARTICLE_NOT_FOUND.
func NewNotFoundError(resource string, key any) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    strings.ToUpper(strings.ReplaceAll(resource, " ", "_")) + "_NOT_FOUND",
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

// NewConflictError reports a uniqueness or state-invariant violation.
func NewConflictError(code, message string) *AppError {
	return &AppError{
		Status:  fiber.StatusConflict,
		Code:    code,
		Message: message,
	}
}

// NewInternalError wraps an unrecoverable storage or runtime failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// PostgreSQL (SQLSTATE 23505) or SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// AsAppError converts any error into an AppError, treating unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

// RespondWithError writes err as an envelope. Non-AppErrors become a 500
// carrying the underlying message.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)

	body := Envelope{Message: appErr.Message, Code: appErr.Code}
	if len(appErr.Fields) > 0 {
		body.Data = appErr.Fields
	}
	if appErr.Err != nil {
		body.Message = appErr.Err.Error()
	}

	return c.Status(appErr.Status).JSON(body)
}

// RespondOK writes a 200 envelope.
func RespondOK(c *fiber.Ctx, code, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Message: message, Code: code, Data: data})
}

// RespondCreated writes a 201 envelope.
func RespondCreated(c *fiber.Ctx, code, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Message: message, Code: code, Data: data})
}
