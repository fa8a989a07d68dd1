package apportion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for a non-positive seat count, an
	// unusable first divisor or an unknown method, tie-break or selector.
	ErrInvalidConfiguration = errors.New("invalid allocation configuration")

	// ErrNoEligibleParties is returned when no party reaches the threshold.
	ErrNoEligibleParties = errors.New("no eligible parties")

	// ErrNoVotes is returned when the valid vote total is zero. It wraps
	// ErrNoEligibleParties.
	ErrNoVotes = fmt.Errorf("%w: no valid votes", ErrNoEligibleParties)
)
