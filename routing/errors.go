package routing

import (
	"github.com/go-errors/errors"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
)

// errorCode enumerates the ways a path-finding or route-construction
// operation can fail.
type errorCode uint8

const (
	// ErrNoPathFound is returned when no path exists from the source to
	// the destination that can carry the requested amount under the
	// current graph and blacklist.
	ErrNoPathFound errorCode = iota

	// ErrNoChannelPolicy is returned when route construction needs a
	// policy for a channel that doesn't have one published in the
	// required direction. Carries the offending short channel id.
	ErrNoChannelPolicy

	// ErrInvariantViolation is returned when an internal invariant the
	// search relies on (e.g. a predecessor map entry pointing nowhere)
	// does not hold. It should never occur against a well-formed graph
	// and indicates a bug rather than an unroutable payment.
	ErrInvariantViolation

	// ErrCancelled is returned when a search is aborted via its
	// context before it could complete.
	ErrCancelled
)

// routerError carries an errorCode alongside the wrapped, stack-trace
// bearing error so that callers outside this package can distinguish
// failure modes with IsError without parsing error strings.
type routerError struct {
	err  *errors.Error
	code errorCode

	// scid is set for ErrNoChannelPolicy, identifying the channel the
	// missing policy belongs to.
	scid lnwire.ShortChannelID
}

// Error implements the error interface.
func (e *routerError) Error() string {
	return e.err.Error()
}

// Unwrap allows errors.Is/errors.As (stdlib and go-errors) to see through to
// the underlying wrapped error.
func (e *routerError) Unwrap() error {
	return e.err.Err
}

var _ error = (*routerError)(nil)

func newErr(code errorCode, a interface{}) *routerError {
	return &routerError{
		code: code,
		err:  errors.New(a),
	}
}

func newErrf(code errorCode, format string, a ...interface{}) *routerError {
	return &routerError{
		code: code,
		err:  errors.Errorf(format, a...),
	}
}

// newNoChannelPolicyErr builds the ErrNoChannelPolicy error for scid.
func newNoChannelPolicyErr(scid lnwire.ShortChannelID) *routerError {
	return &routerError{
		code: ErrNoChannelPolicy,
		err: errors.Errorf("no channel policy found for channel "+
			"%v", scid),
		scid: scid,
	}
}

// IsError reports whether err is a routerError carrying one of the given
// codes.
func IsError(err error, codes ...errorCode) bool {
	rErr, ok := err.(*routerError)
	if !ok {
		return false
	}

	for _, code := range codes {
		if rErr.code == code {
			return true
		}
	}

	return false
}

// MissingPolicySCID returns the short channel id an ErrNoChannelPolicy error
// refers to, and false for any other error.
func MissingPolicySCID(err error) (lnwire.ShortChannelID, bool) {
	rErr, ok := err.(*routerError)
	if !ok || rErr.code != ErrNoChannelPolicy {
		return lnwire.ShortChannelID{}, false
	}

	return rErr.scid, true
}
