package logging

import (
	"context"
	"testing"
)

func TestContext_RoundTrip(t *testing.T) {
	logger := ForTest(t)
	ctx := NewContext(t.Context(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}
}

func TestFromContext_Missing(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("expected discard logger for empty context")
	}
	//nolint:staticcheck // nil context is tolerated
	if FromContext(nil) == nil {
		t.Error("expected discard logger for nil context")
	}
}
