package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "test message: %s", "value")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(ErrCodeEncode, cause, "failed to encode %s", "icon.png")

	if err.Code != ErrCodeEncode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeEncode)
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeFileNotFound, "missing source"),
			want: "FILE_NOT_FOUND: missing source",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeToolFailed, fmt.Errorf("exit status 1"), "iconutil failed"),
			want: "TOOL_FAILED: iconutil failed: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidLayer, "bad layer range")

	if !Is(err, ErrCodeInvalidLayer) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeInvalidLayer) {
		t.Error("Is should unwrap the error chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeToolFailed, "boom")); got != ErrCodeToolFailed {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeToolFailed)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeFileNotFound, "source image not found")
	if got := UserMessage(err); got != "source image not found" {
		t.Errorf("UserMessage = %q, want %q", got, "source image not found")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}

func TestValidateGlyphName(t *testing.T) {
	tests := []struct {
		name    string
		glyph   string
		wantErr bool
	}{
		{"simple name", "git-branch", false},
		{"with digits", "badge2", false},
		{"empty", "", true},
		{"path separator", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"hidden", ".hidden", true},
		{"control character", "bad\x00name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlyphName(tt.glyph)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGlyphName(%q) error = %v, wantErr %v", tt.glyph, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative path", "icons/32x32.png", false},
		{"absolute path", "/tmp/out/icon.icns", false},
		{"empty", "", true},
		{"null byte", "icons/\x00.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
