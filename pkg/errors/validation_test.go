package errors

import (
	"strings"
	"testing"
)

func TestValidateMemberID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "root-1", false},
		{"valid uuid style", "member-0f8fad5b-d9cb-469f-a165-70867728950e", false},
		{"valid non-latin", "दादाजी", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " root", true},
		{"trailing space", "root ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemberID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMemberID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateProductName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "VamshaVriksha", false},
		{"valid with dash", "family-tree", false},

		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProductName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProductName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
