// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	c1, c2 := GenerateCorrelationID(), GenerateCorrelationID()
	if len(c1) != 8 {
		t.Errorf("correlation ID length = %d, want 8", len(c1))
	}
	if c1 == c2 {
		t.Error("expected unique correlation IDs")
	}

	if r := GenerateRequestID(); len(r) != 36 {
		t.Errorf("request ID length = %d, want 36", len(r))
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if CorrelationIDFromContext(ctx) != "" || RequestIDFromContext(ctx) != "" {
		t.Error("expected empty IDs on a bare context")
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	ctx = ContextWithRequestID(ctx, "req-1")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("CorrelationIDFromContext() = %q", got)
	}
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}

	if got := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background())); len(got) != 8 {
		t.Errorf("generated correlation ID = %q", got)
	}
}

func TestCtx(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	ctx := ContextWithRequestID(ContextWithCorrelationID(context.Background(), "corr0001"), "req-42")
	Ctx(ctx).Info().Msg("served")

	out := buf.String()
	for _, want := range []string{`"correlation_id":"corr0001"`, `"request_id":"req-42"`, `"message":"served"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("plain")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id: %s", buf.String())
	}
}
