package commerce

import (
	"errors"
	"fmt"
	"net/http"
)

type FailureKind string

const (
	FailureUnreachable FailureKind = "unreachable"
	FailureTimeout     FailureKind = "timeout"
	FailureStatus      FailureKind = "status"
	FailureDecode      FailureKind = "decode"
	FailureInvalid     FailureKind = "invalid"
)

// Rejection is a well-formed refusal by the commerce API; Detail is safe to show to the user.
type Rejection struct {
	Op     string
	Status int
	Detail string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected with status %d: %s", r.Op, r.Status, r.Detail)
}

// InsufficientBalance is recoverable by topping up the wallet.
func (r *Rejection) InsufficientBalance() bool {
	return r.Status == http.StatusPaymentRequired
}

// OutOfStock means the purchase did not happen and the balance was not charged.
func (r *Rejection) OutOfStock() bool {
	return r.Status == http.StatusNotFound
}

// Failure means the API could not be reached or answered in an unexpected way.
type Failure struct {
	Op     string
	Kind   FailureKind
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s failed (%s, status %d): %v", f.Op, f.Kind, f.Status, f.Err)
	}
	return fmt.Sprintf("%s failed (%s): %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
