package auth

import "errors"

// Token and credential errors. Handlers map all of them to 401.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	// ErrWrongTokenType is returned when a refresh token is presented as an
	// access token or the other way round.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidCredentials covers both an unknown email and a password
	// mismatch so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
