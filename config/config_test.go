package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidateYAMLContent_DefaultsApply(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(`{}`))
	if err != nil {
		t.Fatalf("expected empty config to validate with defaults: %v", err)
	}
	if cfg.Policy.UnpaidBreakMinutes != 30 {
		t.Errorf("unpaid_break_minutes = %d, want 30", cfg.Policy.UnpaidBreakMinutes)
	}
	if cfg.Policy.ShortShiftExemptMinutes != 60 {
		t.Errorf("short_shift_exempt_minutes = %d, want 60", cfg.Policy.ShortShiftExemptMinutes)
	}
	if cfg.Policy.ExpectedDailyHours != 8 {
		t.Errorf("expected_daily_hours = %g, want 8", cfg.Policy.ExpectedDailyHours)
	}
	if !cfg.Policy.ExcludeWeekends {
		t.Errorf("exclude_weekends should default true")
	}
	if !cfg.Ingest.BlipAppend {
		t.Errorf("blip_append should default true")
	}
}

func TestValidateYAMLContent_RejectsNonPositiveExpectedHours(t *testing.T) {
	t.Parallel()

	content := []byte(`policy:
  expected_daily_hours: 0
`)
	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for expected_daily_hours = 0")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsBreakLongerThanExemption(t *testing.T) {
	t.Parallel()

	content := []byte(`policy:
  unpaid_break_minutes: 90
  short_shift_exempt_minutes: 60
`)
	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for break > exemption")
	}
	if !strings.Contains(err.Error(), "unpaid_break_minutes") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconcilePolicy_ConvertsUnits(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(`policy:
  unpaid_break_minutes: 45
  short_shift_exempt_minutes: 90
  long_work_flag_hours: 7.5
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	policy := cfg.ReconcilePolicy()
	if policy.UnpaidBreak != 45*time.Minute {
		t.Errorf("UnpaidBreak = %s", policy.UnpaidBreak)
	}
	if policy.ShortShiftExempt != 90*time.Minute {
		t.Errorf("ShortShiftExempt = %s", policy.ShortShiftExempt)
	}
	if policy.LongWorkFlag != 7*time.Hour+30*time.Minute {
		t.Errorf("LongWorkFlag = %s", policy.LongWorkFlag)
	}
}

func TestExampleYAML_Validates(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
}
