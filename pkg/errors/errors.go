package errors

import (
	"errors"
	"fmt"
)

var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

const cantPrefix = "can't"

func Error(msg string) error {
	return errors.New(msg)
}

func Errorf(msgFormat string, args ...any) error {
	return fmt.Errorf(msgFormat, args...)
}

// Fail builds "can't <whatFailed>" error.
func Fail(whatFailed string) error {
	return fmt.Errorf("%s %s", cantPrefix, whatFailed)
}

func Failf(whatFailedFormat string, args ...any) error {
	return Fail(fmt.Sprintf(whatFailedFormat, args...))
}

func Wrap(err error, wrapper string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", wrapper, err)
}

func Wrapf(err error, wrapperFormat string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(wrapperFormat, args...))
}

// WrapFail returns nil for nil err, so it is safe
// to wrap results of calls directly.
func WrapFail(err error, whatFailed string) error {
	if err == nil {
		return nil
	}
	return Wrapf(err, "%s %s", cantPrefix, whatFailed)
}

func WrapFailf(err error, whatFailedFormat string, args ...any) error {
	if err == nil {
		return nil
	}
	return WrapFail(err, fmt.Sprintf(whatFailedFormat, args...))
}
