package apperr

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Run("Error message format", func(t *testing.T) {
		err := NewValidationError("time_window", "invalid hour", nil)
		got := err.Error()
		if !strings.Contains(got, "field=time_window") {
			t.Errorf("error message should contain 'field=time_window': %s", got)
		}
		if !strings.Contains(got, "message=invalid hour") {
			t.Errorf("error message should contain 'message=invalid hour': %s", got)
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("bad token")
		err := NewValidationError("time_window", "invalid", cause)
		if !errors.Is(err, cause) {
			t.Error("errors.Is should find the cause")
		}
	})

	t.Run("errors.As", func(t *testing.T) {
		var wrapped error = NewValidationError("f", "m", nil)
		var ve *ValidationError
		if !errors.As(wrapped, &ve) {
			t.Fatal("errors.As should match *ValidationError")
		}
		if ve.Field != "f" {
			t.Errorf("Field = %q, want %q", ve.Field, "f")
		}
	})
}

func TestDatabaseError(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  string
	}{
		{"with cause", errors.New("connection reset"), "database error: stage=query, cause=connection reset"},
		{"without cause", nil, "database error: stage=query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("query", tt.cause)
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Error("errors.Is should find the cause")
			}
		})
	}
}

func TestValkeyError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewValkeyError("GET", "user:alice", cause)
	got := err.Error()
	if !strings.Contains(got, "operation=GET") || !strings.Contains(got, "key=user:alice") {
		t.Errorf("unexpected message: %s", got)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	noCause := NewValkeyError("SET", "user:bob", nil)
	if strings.Contains(noCause.Error(), "cause=") {
		t.Errorf("message without cause should not contain cause: %s", noCause.Error())
	}
}
