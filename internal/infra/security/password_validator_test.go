package security

import (
	"errors"
	"testing"
)

func TestDefaultPasswordValidatorAcceptsCompliantPassword(t *testing.T) {
	validator := DefaultPasswordValidator(8, 0)

	if err := validator.Validate("Abcdef12"); err != nil {
		t.Fatalf("expected compliant password to pass, got: %v", err)
	}
}

func TestDefaultPasswordValidatorStructuralRules(t *testing.T) {
	validator := DefaultPasswordValidator(8, 0)

	cases := []struct {
		name     string
		password string
		code     string
	}{
		{name: "too short", password: "Ab1", code: "min_length"},
		{name: "missing uppercase", password: "abcdef12", code: "uppercase"},
		{name: "missing lowercase", password: "ABCDEF12", code: "lowercase"},
		{name: "missing digit", password: "Abcdefgh", code: "digit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Validate(tc.password)
			if err == nil {
				t.Fatalf("expected violation for %q", tc.password)
			}

			var violation *PasswordValidationError
			if !errors.As(err, &violation) {
				t.Fatalf("expected PasswordValidationError, got %T", err)
			}
			if violation.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, violation.Code)
			}
		})
	}
}

func TestPasswordStrengthRuleRejectsWeakPasswordAtHighFloor(t *testing.T) {
	validator := DefaultPasswordValidator(8, 4)

	if err := validator.Validate("Abcdef12"); err == nil {
		t.Fatal("expected a guessable password to fail a maximum strength floor")
	}
}

func TestNilValidatorRejectsEverything(t *testing.T) {
	var validator *PasswordValidator
	if err := validator.Validate("Abcdef12"); err == nil {
		t.Fatal("nil validator must refuse to validate")
	}
}
