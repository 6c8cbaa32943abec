package model

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"student", "agent", "admin"} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", raw, err)
		}
		if string(role) != raw {
			t.Errorf("ParseRole(%q) = %q", raw, role)
		}
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	// No silent fallback: anything outside the closed set is an error.
	for _, raw := range []string{"", "Student", "superadmin", "teacher"} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrUnknownRole) {
			t.Errorf("ParseRole(%q): expected ErrUnknownRole, got %v", raw, err)
		}
	}
}
