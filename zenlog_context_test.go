package zenlog_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"pkt.systems/zenlog"
)

type recordingBase struct {
	seen []string
}

func (r *recordingBase) record(level string, values ...any) {
	r.seen = append(r.seen, level+":"+strings.TrimSpace(fmt.Sprintln(values...)))
}

func (r *recordingBase) Debug(values ...any)   { r.record("debug", values...) }
func (r *recordingBase) Info(values ...any)    { r.record("info", values...) }
func (r *recordingBase) Success(values ...any) { r.record("success", values...) }
func (r *recordingBase) Warning(values ...any) { r.record("warning", values...) }
func (r *recordingBase) Error(values ...any)   { r.record("error", values...) }
func (r *recordingBase) Lethal(values ...any)  { r.record("lethal", values...) }

func isNoopLogger(tb testing.TB, logger any) bool {
	tb.Helper()
	return strings.HasSuffix(fmt.Sprintf("%T", logger), ".noopLogger")
}

func TestContextWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, 80, testRules(nil))

	ctx := zenlog.ContextWithLogger(nil, logger)
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := zenlog.LoggerFromContext(ctx); got != logger {
		t.Fatalf("logger round trip failed: got %T want %T", got, logger)
	}
	if got := zenlog.Ctx(ctx); got != logger {
		t.Fatalf("Ctx alias did not match logger")
	}
	if got := zenlog.BaseLoggerFromContext(ctx); got != logger {
		t.Fatalf("BaseLoggerFromContext did not return stored logger")
	}
	if got := zenlog.BCtx(ctx); got != logger {
		t.Fatalf("BCtx alias did not return stored logger")
	}

	zenlog.Ctx(ctx).Info("from logger")
	zenlog.BCtx(ctx).Success("from base")
	if got, want := buf.String(), "INFO from logger\nSUCCESS from base\n"; got != want {
		t.Fatalf("unexpected output: got %q want %q", got, want)
	}
}

func TestContextWithBaseLogger(t *testing.T) {
	base := &recordingBase{}
	ctx := zenlog.ContextWithBaseLogger(context.Background(), base)

	zenlog.BCtx(ctx).Warning("disk", 93)
	if len(base.seen) != 1 || base.seen[0] != "warning:disk 93" {
		t.Fatalf("unexpected records %v", base.seen)
	}
	if !isNoopLogger(t, zenlog.Ctx(ctx)) {
		t.Fatalf("a Base-only logger must not satisfy Ctx")
	}
}

func TestContextWithoutLoggerFallsBackToNoop(t *testing.T) {
	if !isNoopLogger(t, zenlog.Ctx(context.Background())) {
		t.Fatalf("expected noop logger for empty context")
	}
	if !isNoopLogger(t, zenlog.BCtx(context.Background())) {
		t.Fatalf("expected noop base logger for empty context")
	}
	ctx := zenlog.ContextWithLogger(context.Background(), nil)
	if !isNoopLogger(t, zenlog.Ctx(ctx)) {
		t.Fatalf("expected nil logger to be ignored")
	}

	noop := zenlog.Noop()
	noop.Info("ignored")
	if derived := noop.With("k", "v").LogLevel(zenlog.ErrorLevel).WithSeparator(","); !isNoopLogger(t, derived) {
		t.Fatalf("derived noop logger has type %T", derived)
	}
}
