package config

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/hmelementsgreen/HRM-Dashboard/reconcile"
)

const (
	KeyPolicyUnpaidBreakMinutes      = "policy.unpaid_break_minutes"
	KeyPolicyShortShiftExemptMinutes = "policy.short_shift_exempt_minutes"
	KeyPolicyLongWorkFlagHours       = "policy.long_work_flag_hours"
	KeyPolicyExpectedDailyHours      = "policy.expected_daily_hours"
	KeyPolicyExcludeWeekends         = "policy.exclude_weekends"
	KeyIngestBlipAppend              = "ingest.blip_append"
	KeyIngestBlipCumulativePath      = "ingest.blip_cumulative_path"
)

type Config struct {
	Policy PolicyConfig `mapstructure:"policy"`
	Ingest IngestConfig `mapstructure:"ingest"`
}

// PolicyConfig carries the business assumptions of the correction and
// aggregation layers. The unpaid-break deduction is a named value pending
// product-owner confirmation, not a constant.
type PolicyConfig struct {
	UnpaidBreakMinutes      int     `mapstructure:"unpaid_break_minutes" validate:"min=0"`
	ShortShiftExemptMinutes int     `mapstructure:"short_shift_exempt_minutes" validate:"min=0"`
	LongWorkFlagHours       float64 `mapstructure:"long_work_flag_hours" validate:"min=0"`
	ExpectedDailyHours      float64 `mapstructure:"expected_daily_hours" validate:"gt=0"`
	ExcludeWeekends         bool    `mapstructure:"exclude_weekends"`
}

type IngestConfig struct {
	// BlipAppend merges corrected BLIP rows into the cumulative CSV by
	// default; --no-append overrides per run.
	BlipAppend bool `mapstructure:"blip_append"`
	// BlipCumulativePath overrides the default cumulative CSV location
	// (blip_cumulative.csv inside the run's output folder).
	BlipCumulativePath string `mapstructure:"blip_cumulative_path"`
}

// ReconcilePolicy converts the config values into the correction policy.
func (c *Config) ReconcilePolicy() reconcile.Policy {
	return reconcile.Policy{
		UnpaidBreak:      time.Duration(c.Policy.UnpaidBreakMinutes) * time.Minute,
		ShortShiftExempt: time.Duration(c.Policy.ShortShiftExemptMinutes) * time.Minute,
		LongWorkFlag:     time.Duration(c.Policy.LongWorkFlagHours * float64(time.Hour)),
	}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# hrmdash configuration
policy:
  unpaid_break_minutes: 30
  short_shift_exempt_minutes: 60
  long_work_flag_hours: 6
  expected_daily_hours: 8
  exclude_weekends: true

ingest:
  blip_append: true
  blip_cumulative_path: ""
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if cfg.Policy.ShortShiftExemptMinutes > 0 &&
		cfg.Policy.UnpaidBreakMinutes > cfg.Policy.ShortShiftExemptMinutes {
		return nil, fmt.Errorf(
			"validation failed: policy.unpaid_break_minutes (%d) exceeds policy.short_shift_exempt_minutes (%d)",
			cfg.Policy.UnpaidBreakMinutes, cfg.Policy.ShortShiftExemptMinutes,
		)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPolicyUnpaidBreakMinutes, 30)
	v.SetDefault(KeyPolicyShortShiftExemptMinutes, 60)
	v.SetDefault(KeyPolicyLongWorkFlagHours, 6.0)
	v.SetDefault(KeyPolicyExpectedDailyHours, 8.0)
	v.SetDefault(KeyPolicyExcludeWeekends, true)
	v.SetDefault(KeyIngestBlipAppend, true)
	v.SetDefault(KeyIngestBlipCumulativePath, "")
}
