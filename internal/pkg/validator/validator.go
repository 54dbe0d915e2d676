package validator

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/xyz-asif/taskmanager/pkg/errors"
)

// ExistsFunc reports whether a referenced document exists.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// Rule checks one field. It returns nil, a failure built with Invalid or
// Missing, or any other error to abort validation altogether.
type Rule func(ctx context.Context, f Field) error

type failureKind int

const (
	failInvalid failureKind = iota
	failMissing
)

type failure struct {
	kind    failureKind
	message string
}

func (f *failure) Error() string { return f.message }

// Invalid marks a field as malformed (400).
func Invalid(message string) error { return &failure{kind: failInvalid, message: message} }

// Missing marks a field whose reference points at nothing (404).
func Missing(message string) error { return &failure{kind: failMissing, message: message} }

type deferred struct {
	run func(ctx context.Context) error
}

func (d *deferred) Error() string { return "deferred check" }

// Later postpones a check until every field has passed its format rules.
// Rules registered after it on the same field are skipped.
func Later(run func(ctx context.Context) error) error { return &deferred{run: run} }

// IsValidObjectID checks if s is a 24-character hex ObjectID
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// RequiredTrimmedString requires a string that is not blank after trimming.
func RequiredTrimmedString(requiredMessage, invalidMessage string) Rule {
	return func(_ context.Context, f Field) error {
		if !f.Present() {
			return Invalid(requiredMessage)
		}
		s, ok := f.AsTrimmedString()
		if !ok || s == "" {
			return Invalid(invalidMessage)
		}
		return nil
	}
}

// OptionalTrimmedString accepts an absent field, otherwise behaves like
// RequiredTrimmedString.
func OptionalTrimmedString(message string) Rule {
	return func(_ context.Context, f Field) error {
		if !f.Present() {
			return nil
		}
		s, ok := f.AsTrimmedString()
		if !ok || s == "" {
			return Invalid(message)
		}
		return nil
	}
}

// OptionalString accepts an absent field or any string, including "".
func OptionalString(message string) Rule {
	return func(_ context.Context, f Field) error {
		if !f.Present() {
			return nil
		}
		if _, ok := f.AsString(); !ok {
			return Invalid(message)
		}
		return nil
	}
}

// OptionalStrictBool accepts an absent field or a JSON boolean.
func OptionalStrictBool(message string) Rule {
	return func(_ context.Context, f Field) error {
		if !f.Present() {
			return nil
		}
		if _, ok := f.AsBool(); !ok {
			return Invalid(message)
		}
		return nil
	}
}

// OptionalReference accepts absent, null and "" (the caller decides what a
// cleared reference means). Anything else must be a well-formed ObjectID that
// exists. The existence lookup only runs once every field is well formed.
func OptionalReference(exists ExistsFunc, formatMessage, missingMessage string) Rule {
	return func(_ context.Context, f Field) error {
		if !f.Present() || f.Cleared() {
			return nil
		}
		id, ok := f.AsString()
		if !ok || !IsValidObjectID(id) {
			return Invalid(formatMessage)
		}
		return Later(func(ctx context.Context) error {
			found, err := exists(ctx, id)
			if err != nil {
				return fmt.Errorf("reference lookup: %w", err)
			}
			if !found {
				return Missing(missingMessage)
			}
			return nil
		})
	}
}

// ObjectID requires a well-formed ObjectID, typically a path parameter.
// Surrounding whitespace is not tolerated.
func ObjectID(message string) Rule {
	return func(_ context.Context, f Field) error {
		s, ok := f.AsString()
		if !ok || !IsValidObjectID(s) {
			return Invalid(message)
		}
		return nil
	}
}

type check struct {
	name  string
	field Field
	rules []Rule
}

// Validator runs rules field by field, in the order they were added.
type Validator struct {
	checks []check
}

func New() *Validator {
	return &Validator{}
}

// Field registers rules for a named field.
func (v *Validator) Field(name string, f Field, rules ...Rule) *Validator {
	v.checks = append(v.checks, check{name: name, field: f, rules: rules})
	return v
}

// Validate returns nil when every field passes. The first failing rule of a
// field wins. Malformed fields produce a 400 list covering all fields;
// checks postponed with Later run only when nothing is malformed. If the only
// failures are missing references the result is a 404 carrying the first
// missing message.
func (v *Validator) Validate(ctx context.Context) error {
	type pending struct {
		name string
		run  func(ctx context.Context) error
	}

	var (
		invalid []apperrors.FieldError
		missing []apperrors.FieldError
		later   []pending
	)

	record := func(name string, err error) error {
		var f *failure
		if !errors.As(err, &f) {
			return apperrors.Internal(err)
		}
		fe := apperrors.FieldError{Field: name, Message: f.message}
		if f.kind == failMissing {
			missing = append(missing, fe)
		} else {
			invalid = append(invalid, fe)
		}
		return nil
	}

	for _, c := range v.checks {
		for _, rule := range c.rules {
			err := rule(ctx, c.field)
			if err == nil {
				continue
			}
			var d *deferred
			if errors.As(err, &d) {
				later = append(later, pending{name: c.name, run: d.run})
				break
			}
			if appErr := record(c.name, err); appErr != nil {
				return appErr
			}
			break
		}
	}

	if len(invalid) > 0 {
		return apperrors.Validation(invalid)
	}

	for _, p := range later {
		err := p.run(ctx)
		if err == nil {
			continue
		}
		if appErr := record(p.name, err); appErr != nil {
			return appErr
		}
	}

	if len(invalid) > 0 {
		return apperrors.Validation(invalid)
	}
	if len(missing) > 0 {
		return apperrors.NotFound(missing[0].Message)
	}
	return nil
}
