package flywheel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Code is a stable identifier for a class of validation problem.
type Code string

func (c Code) Error() string { return string(c) }

const (
	OK                  Code = "ok"
	InvalidUnits        Code = "invalid_units"
	InvalidController   Code = "invalid_controller"
	NoMotors            Code = "no_motors"
	LengthMismatch      Code = "length_mismatch"
	InvalidPort         Code = "invalid_port"
	DuplicatePort       Code = "duplicate_port"
	InvalidEPR          Code = "invalid_epr"
	InvalidEncoderPorts Code = "invalid_encoder_ports"

	Unknown Code = "error" // anything that is not a validation problem
)

// Problem is a single violated constraint on one field of the record.
type Problem struct {
	Code    Code
	Field   string
	Message string
}

func (p *Problem) Error() string {
	return p.Field + ": " + p.Message
}

// Unwrap lets errors.Is match a Problem against its Code.
func (p *Problem) Unwrap() error { return p.Code }

// ValidationError collects every problem found in a record.
type ValidationError struct {
	errs *multierror.Error
}

func (e *ValidationError) add(code Code, field, format string, args ...any) {
	e.errs = multierror.Append(e.errs, &Problem{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *ValidationError) orNil() error {
	if e.errs.ErrorOrNil() == nil {
		return nil
	}
	return e
}

// Problems returns the problems in the order they were found.
func (e *ValidationError) Problems() []*Problem {
	if e.errs == nil {
		return nil
	}
	out := make([]*Problem, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		var p *Problem
		if errors.As(err, &p) {
			out = append(out, p)
		}
	}
	return out
}

func (e *ValidationError) Error() string {
	problems := e.Problems()
	if len(problems) == 1 {
		return "invalid flywheel config: " + problems[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid flywheel config: %d problems:", len(problems))
	for _, p := range problems {
		b.WriteString("\n  * ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	if e.errs == nil {
		return nil
	}
	return e.errs.Errors
}

// CodeOf returns the code of the first problem carried by err.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var p *Problem
	if errors.As(err, &p) {
		return p.Code
	}
	return Unknown
}
