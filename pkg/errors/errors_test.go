package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAsAppErrorDirect(t *testing.T) {
	appErr := New(CodeStoryNotFound, "story not found")

	got := AsAppError(appErr)
	if got != appErr {
		t.Errorf("direct AppError must be returned as is")
	}
	if got.HTTPStatus != http.StatusNotFound {
		t.Errorf("http status = %d, want 404", got.HTTPStatus)
	}
}

func TestAsAppErrorWrappedChain(t *testing.T) {
	appErr := New(CodeDatabaseError, "failed to list stories")
	wrapped := fmt.Errorf("cache loader: %w", appErr)

	if !IsAppError(wrapped) {
		t.Fatal("IsAppError must find AppError through the wrap chain")
	}
	got := AsAppError(wrapped)
	if got.Code != CodeDatabaseError {
		t.Errorf("code = %s, want %s", got.Code, CodeDatabaseError)
	}
}

func TestAsAppErrorUnknown(t *testing.T) {
	plain := fmt.Errorf("connection refused")

	if IsAppError(plain) {
		t.Error("plain error must not be an AppError")
	}
	got := AsAppError(plain)
	if got.Code != CodeUnknown {
		t.Errorf("code = %s, want %s", got.Code, CodeUnknown)
	}
	if got.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("http status = %d, want 500", got.HTTPStatus)
	}
}
