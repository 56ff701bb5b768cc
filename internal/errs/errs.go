// Package errs contains the typed domain errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"net/http"
)

// Code is a stable machine-readable error code surfaced to API clients.
type Code string

const (
	CodeInternal            Code = "ERR_INTERNAL_SERVER_ERROR"
	CodeInvalidInput        Code = "ERR_INVALID_INPUT"
	CodeWeakPassword        Code = "ERR_WEAK_PASSWORD"
	CodeEmailExists         Code = "ERR_USER_ALREADY_EXISTS"
	CodeUserNotFound        Code = "ERR_USER_NOT_FOUND"
	CodeUnauthorized        Code = "ERR_UNAUTHORIZED"
	CodeInvalidCredentials  Code = "ERR_INVALID_CREDENTIALS"
	CodeInvalidToken        Code = "ERR_INVALID_TOKEN"
	CodeAssociationExists   Code = "ERR_ASSOCIATION_ALREADY_EXISTS"
	CodeAssociationNotFound Code = "ERR_ASSOCIATION_NOT_FOUND"
	CodeInvalidOrder        Code = "ERR_INVALID_ORDER"
	CodeOrderNotFound       Code = "ERR_ORDER_NOT_FOUND"
	CodeProductNotFound     Code = "ERR_PRODUCT_NOT_FOUND"
	CodeDuplicatedResource  Code = "ERR_DUPLICATED_RESOURCE"
)

// Error carries a stable code, an HTTP-equivalent status and a human message.
// Services return the sentinels below (possibly wrapped); the HTTP boundary
// maps anything else to CodeInternal.
type Error struct {
	Code    Code
	Status  int
	Message string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Is matches errors by code so wrapped errors still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

// Common sentinels across repo/service layers.
var (
	// ErrInternal hides unexpected failures behind a generic message.
	ErrInternal = &Error{CodeInternal, http.StatusInternalServerError, "internal server error"}

	// ErrInvalidInput indicates a request that fails basic validation. Also
	// deliberately returned when a role name does not exist, so the valid role
	// namespace is not disclosed.
	ErrInvalidInput = &Error{CodeInvalidInput, http.StatusBadRequest, "invalid input data"}

	// ErrWeakPassword indicates a password failing the strength policy.
	ErrWeakPassword = &Error{CodeWeakPassword, http.StatusBadRequest, "password does not meet the strength policy"}

	// ErrEmailExists indicates the registration email is already taken.
	ErrEmailExists = &Error{CodeEmailExists, http.StatusConflict, "user already exists"}

	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = &Error{CodeUserNotFound, http.StatusNotFound, "user not found"}

	// ErrUnauthorized indicates a missing/invalid token, insufficient role or
	// non-ownership of the target resource.
	ErrUnauthorized = &Error{CodeUnauthorized, http.StatusUnauthorized, "unauthorized access"}

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = &Error{CodeInvalidCredentials, http.StatusUnauthorized, "invalid credentials"}

	// ErrInvalidToken indicates a refresh token that is missing, expired or already consumed.
	ErrInvalidToken = &Error{CodeInvalidToken, http.StatusBadRequest, "invalid or expired token"}

	// ErrAssociationExists indicates the (user, role) pair is already linked.
	ErrAssociationExists = &Error{CodeAssociationExists, http.StatusConflict, "association already exists"}

	// ErrAssociationNotFound indicates the (user, role) pair is not linked.
	ErrAssociationNotFound = &Error{CodeAssociationNotFound, http.StatusNotFound, "association not found"}

	// ErrInvalidOrder indicates an order request that cannot be priced: empty
	// items, bad quantity, unknown product or non-positive total.
	ErrInvalidOrder = &Error{CodeInvalidOrder, http.StatusBadRequest, "invalid order request"}

	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = &Error{CodeOrderNotFound, http.StatusNotFound, "order not found"}

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = &Error{CodeProductNotFound, http.StatusNotFound, "product not found"}

	// ErrDuplicatedResource indicates a unique-name conflict (e.g. product name per owner).
	ErrDuplicatedResource = &Error{CodeDuplicatedResource, http.StatusConflict, "resource already exists"}
)

// From extracts the typed error from err, falling back to ErrInternal for
// anything that is not a domain error.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}
