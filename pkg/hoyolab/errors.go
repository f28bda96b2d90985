package hoyolab

import (
	"errors"
	"fmt"
)

// Well-known retcodes returned by the service.
const (
	RetcodeOK             = 0
	RetcodeInvalidCookie  = -100
	RetcodeRateLimited    = -2016 // requires delay before retrying
	RetcodeAlreadyClaimed = -5003
	RetcodeCodeExpired    = -2001
	RetcodeCodeInvalid    = -2003
	RetcodeCodeUsed       = -2017

	// retcodeLegacyFailure is the synthetic retcode produced when a response
	// cannot be decoded and the client runs with LegacyErrorEnvelope enabled.
	retcodeLegacyFailure = -9999
)

// ErrRedeemUnsupported is returned when redeeming a code for a game that
// has no redemption endpoint (Honkai Impact 3rd).
var ErrRedeemUnsupported = errors.New("hoyolab: game does not support code redemption")

// APIError is a response envelope with a non-zero retcode, surfaced by the
// typed operations. The retcode values are defined by the service.
type APIError struct {
	Retcode int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hoyolab: api error %d: %s", e.Retcode, e.Message)
}

// TransportError indicates an HTTP-level failure: either a non-2xx status
// from the service or a transport error from the underlying client.
// Transport errors are never retried.
type TransportError struct {
	Status  int // zero when the request never produced a response
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("hoyolab: http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("hoyolab: transport: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CredentialError indicates a cookie string or Credential missing required
// fields (ltoken, ltuid) or carrying malformed values.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return "hoyolab: credential: " + e.Message
}

// InvalidIdentifierError indicates a game UID that maps to no known region.
type InvalidIdentifierError struct {
	Game Game
	UID  int64
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("hoyolab: uid %d maps to no known %s region", e.UID, e.Game)
}

// MissingAccountContextError indicates an operation that needs account
// context (a cookie_token, a resolved region) that was never provided.
type MissingAccountContextError struct {
	Message string
}

func (e *MissingAccountContextError) Error() string {
	return "hoyolab: missing account context: " + e.Message
}

// DecodeError indicates a response body that could not be parsed as the
// expected envelope. With LegacyErrorEnvelope enabled these are absorbed
// into a synthetic retcode -9999 response instead.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hoyolab: decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
