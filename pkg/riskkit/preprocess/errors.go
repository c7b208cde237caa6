package preprocess

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVariable indicates a variable that is not in the config table.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrNotFitted indicates an apply before the reference value was fitted.
	ErrNotFitted = errors.New("reference value not fitted")
	// ErrConfigCheck indicates a config table that fails CheckConfig.
	ErrConfigCheck = errors.New("config check failed")
	// ErrTargetRequired indicates a WOE step without a target column.
	ErrTargetRequired = errors.New("target is required for WOE")
	// ErrTargetNotBinary indicates a target with values other than 0 and 1,
	// or without both classes.
	ErrTargetNotBinary = errors.New("target must be binary with both classes present")
	// ErrZeroSpread indicates a zero standard deviation or a max equal to min.
	ErrZeroSpread = errors.New("zero spread")
)

// StepError reports the variable and step that failed.
type StepError struct {
	Step     string
	Variable string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Step, e.Variable, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(step, variable string, err error) *StepError {
	return &StepError{Step: step, Variable: variable, Err: err}
}
