package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Override keys. Each maps to a command flag and an APGEN_* environment variable
// (dashes become underscores, e.g. APGEN_OUTPUT_DIR).
const (
	KeyFormat    = "format"
	KeyOutputDir = "output-dir"
	KeySeed      = "seed"
	KeyRate      = "rate"
)

// NewOverrides returns a viper instance reading APGEN_* variables and, when
// flags is non-nil, the given command flags.
func NewOverrides(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("APGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{KeyFormat, KeyOutputDir, KeySeed, KeyRate} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}
	return v, nil
}

// ApplyOverrides returns a copy of the settings with the general values that
// were explicitly set via flags or environment replaced, then re-validated.
// Flag defaults never override the YAML.
func (s *Settings) ApplyOverrides(v *viper.Viper) (*Settings, error) {
	out := *s
	if v.IsSet(KeyFormat) {
		out.General.OutputFormat = strings.ToLower(v.GetString(KeyFormat))
	}
	if v.IsSet(KeyOutputDir) {
		out.General.OutputDir = v.GetString(KeyOutputDir)
	}
	if v.IsSet(KeySeed) {
		out.General.Seed = v.GetUint64(KeySeed)
	}
	if v.IsSet(KeyRate) {
		out.General.MaxOperationsPerSecond = v.GetFloat64(KeyRate)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
