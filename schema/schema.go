// Package schema validates the wire shape of change records before they
// are handed to downstream consumers. The contract is fixed: every
// record carries a non-empty path string; old and new values are
// optional and unconstrained.
package schema

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/statediff"
)

// recordValidate is the validator instance for change records.
var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
}

// ValidateChange checks a single change record against the downstream
// shape. Returns nil when the record is valid.
func ValidateChange(c statediff.Change) error {
	err := recordValidate.Struct(c)
	if err == nil {
		return nil
	}

	errs := &ValidationErrors{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), fmt.Sprintf("failed %q constraint", fe.Tag()))
		}
	} else {
		errs.Add("", err.Error())
	}
	return errs.AsError()
}

// ValidateChanges checks every record in the slice, prefixing each
// failure with the record's index. Returns nil when all records are
// valid.
func ValidateChanges(changes []statediff.Change) error {
	errs := &ValidationErrors{}
	for i, c := range changes {
		if err := ValidateChange(c); err != nil {
			errs.Add(fmt.Sprintf("[%d]", i), err.Error())
		}
	}
	return errs.AsError()
}
