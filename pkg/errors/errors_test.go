package errors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinelErrors := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrConfigNotFound", ErrConfigNotFound, "config not found"},
		{"ErrConfigInvalid", ErrConfigInvalid, "invalid configuration"},
		{"ErrConnectFailed", ErrConnectFailed, "mongodb connection failed"},
		{"ErrCollectionUnavailable", ErrCollectionUnavailable, "mongodb collection unavailable"},
		{"ErrNotActivated", ErrNotActivated, "appender not activated"},
		{"ErrInsertFailed", ErrInsertFailed, "mongodb insert failed"},
		{"ErrFilterInvalid", ErrFilterInvalid, "invalid filter expression"},
		{"ErrTimeout", ErrTimeout, "operation timeout"},
		{"ErrCanceled", ErrCanceled, "operation canceled"},
	}

	for _, tc := range sentinelErrors {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err == nil {
				t.Errorf("%s is nil", tc.name)
				return
			}
			if tc.err.Error() != tc.msg {
				t.Errorf("%s: got %q, want %q", tc.name, tc.err.Error(), tc.msg)
			}
		})
	}
}

func TestNewConfigError(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
		want  string
	}{
		{
			name:  "invalid port",
			field: "mongo.port",
			value: -1,
			want:  "invalid configuration: field=mongo.port value=-1",
		},
		{
			name:  "empty collection",
			field: "mongo.collection",
			value: "",
			want:  "invalid configuration: field=mongo.collection value=",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewConfigError(tc.field, tc.value)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tc.want {
				t.Errorf("got %q, want %q", err.Error(), tc.want)
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("error should wrap ErrConfigInvalid")
			}
		})
	}
}

func TestNewConnectError(t *testing.T) {
	err := NewConnectError("db.local", 27017, errors.New("server selection timeout"))
	want := "mongodb connection failed: db.local:27017: server selection timeout"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrConnectFailed) {
		t.Errorf("error should wrap ErrConnectFailed")
	}
}

func TestNewInsertError(t *testing.T) {
	err := NewInsertError("logs", errors.New("not primary"))
	want := "mongodb insert failed: collection=logs: not primary"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInsertFailed) {
		t.Errorf("error should wrap ErrInsertFailed")
	}
}

func TestNewFilterError(t *testing.T) {
	err := NewFilterError("level ==", errors.New("unexpected token EOF"))
	want := `invalid filter expression: "level ==": unexpected token EOF`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrFilterInvalid) {
		t.Errorf("error should wrap ErrFilterInvalid")
	}
}

func TestErrorComparison(t *testing.T) {
	t.Run("same sentinel errors are equal", func(t *testing.T) {
		if ErrInsertFailed != ErrInsertFailed {
			t.Error("same sentinel errors should be equal")
		}
	})

	t.Run("different sentinel errors are not equal", func(t *testing.T) {
		if ErrInsertFailed == ErrNotActivated {
			t.Error("different sentinel errors should not be equal")
		}
	})
}
