// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	a, b := GenerateRunID(), GenerateRunID()
	if len(a) != 8 {
		t.Errorf("expected 8 character run ID, got %q", a)
	}
	if a == b {
		t.Error("expected distinct run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RunIDFromContext(ctx); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}

	ctx = ContextWithRunID(ctx, "run-123")
	if got := RunIDFromContext(ctx); got != "run-123" {
		t.Errorf("expected run-123, got %q", got)
	}

	ctx = ContextWithNewRunID(context.Background())
	if got := RunIDFromContext(ctx); len(got) != 8 {
		t.Errorf("expected generated run ID, got %q", got)
	}
}

func TestContextWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	custom := zerolog.New(&buf).With().Str("custom", "field").Logger()

	ctx := ContextWithLogger(context.Background(), custom)
	logger := LoggerFromContext(ctx)
	logger.Info().Msg("test")

	if !strings.Contains(buf.String(), "custom") {
		t.Errorf("expected custom field in output: %s", buf.String())
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRunID(context.Background(), "run-456")
	Ctx(ctx).Info().Msg("context test")

	if !strings.Contains(buf.String(), `"run_id":"run-456"`) {
		t.Errorf("expected run_id in output: %s", buf.String())
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("no run")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("unexpected run_id in output: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	l := WithComponent("selector")
	l.Info().Msg("component test")

	if !strings.Contains(buf.String(), `"component":"selector"`) {
		t.Errorf("expected component field in output: %s", buf.String())
	}
}

func TestStage(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRunID(context.Background(), "run-789")
	done := Stage(ctx, "dedupe")
	done()

	output := buf.String()
	for _, want := range []string{`"stage":"dedupe"`, `"run_id":"run-789"`, "elapsed", "stage finished"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}
