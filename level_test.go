package zenlog_test

import (
	"testing"

	"pkt.systems/zenlog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zenlog.Level
		ok   bool
	}{
		{"debug", zenlog.DebugLevel, true},
		{" INFO ", zenlog.InfoLevel, true},
		{"success", zenlog.SuccessLevel, true},
		{"warn", zenlog.WarningLevel, true},
		{"Warning", zenlog.WarningLevel, true},
		{"error", zenlog.ErrorLevel, true},
		{"fatal", zenlog.LethalLevel, true},
		{"critical", zenlog.LethalLevel, true},
		{"off", zenlog.Disabled, true},
		{"3", zenlog.WarningLevel, true},
		{"9", zenlog.InfoLevel, false},
		{"chatty", zenlog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := zenlog.ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLevelOrderAndNames(t *testing.T) {
	order := []zenlog.Level{
		zenlog.DebugLevel, zenlog.InfoLevel, zenlog.SuccessLevel,
		zenlog.WarningLevel, zenlog.ErrorLevel, zenlog.LethalLevel, zenlog.Disabled,
	}
	names := []string{"debug", "info", "success", "warning", "error", "lethal", "disabled"}
	for i, level := range order {
		if i > 0 && level <= order[i-1] {
			t.Fatalf("%v must rank above %v", level, order[i-1])
		}
		if level.String() != names[i] {
			t.Fatalf("String() = %q, want %q", level.String(), names[i])
		}
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("ZENLOG_TEST_LEVEL_KEY", "error")
	if level, ok := zenlog.LevelFromEnv("ZENLOG_TEST_LEVEL_KEY"); !ok || level != zenlog.ErrorLevel {
		t.Fatalf("LevelFromEnv = (%v, %v)", level, ok)
	}
	if _, ok := zenlog.LevelFromEnv("ZENLOG_TEST_LEVEL_MISSING"); ok {
		t.Fatalf("expected a missing variable to report false")
	}
}
