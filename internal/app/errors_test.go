package app

import (
	"errors"
	"os"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"full", NewOperationError("write", "a.txt", os.ErrPermission), "write a.txt: permission denied"},
		{"no target", NewOperationError("record", "", ErrBadArguments), "record: bad arguments"},
		{"no error", NewOperationError("write", "a.txt", nil), "write a.txt"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("write", "x", ErrNoFileName)
	if !errors.Is(err, ErrNoFileName) {
		t.Error("expected errors.Is to see the wrapped error")
	}
	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("nil Unwrap should return nil")
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.AsError() != nil || list.Error() != "" {
		t.Error("empty list should be no error")
	}

	list.Add(nil)
	list.Add(ErrQuit)
	if list.Len() != 1 || list.Error() != ErrQuit.Error() {
		t.Errorf("one error: %d %q", list.Len(), list.Error())
	}

	list.Add(ErrUnsavedChanges)
	err := list.AsError()
	if err == nil || err.Error() != "2 errors: first: quit requested" {
		t.Errorf("AsError() = %v", err)
	}
	if !errors.Is(err, ErrUnsavedChanges) {
		t.Error("errors.Is should search every error in the list")
	}
}
