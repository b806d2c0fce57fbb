package services_test

import (
	"context"
	"testing"

	"baldr/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithPresentation(ctx, "Beethoven_Fuer-Elise")
	ctx = services.WithSlideNo(ctx, 7)
	ctx = services.WithPhase(ctx, "resolve")
	ctx = services.WithRequestID(ctx, "req-123")

	if ref, ok := services.PresentationFromContext(ctx); !ok || ref != "Beethoven_Fuer-Elise" {
		t.Fatalf("unexpected presentation: %v %v", ref, ok)
	}
	if no, ok := services.SlideNoFromContext(ctx); !ok || no != 7 {
		t.Fatalf("unexpected slide no: %v %v", no, ok)
	}
	if phase, ok := services.PhaseFromContext(ctx); !ok || phase != "resolve" {
		t.Fatalf("unexpected phase: %v %v", phase, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithPhase(ctx, "")
	ctx = services.WithPresentation(ctx, "")
	if _, ok := services.PhaseFromContext(ctx); ok {
		t.Fatal("expected no phase value")
	}
	if _, ok := services.PresentationFromContext(ctx); ok {
		t.Fatal("expected no presentation value")
	}
	if _, ok := services.SlideNoFromContext(ctx); ok {
		t.Fatal("expected no slide number")
	}
}
