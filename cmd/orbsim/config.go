package main

import (
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/orbital-amm/orbital/types"
)

const (
	defaultMetricsPort = 36670
	defaultOTLPTarget  = "http://127.0.0.1:4318"
	defaultSampleRate  = 0.1

	configFileName = "orbsim.toml"
)

// Config is the full orbsim configuration, loaded from <home>/orbsim.toml
// with ORBSIM_* environment overrides applied on top.
type Config struct {
	Telemetry TelemetryConfig
	Engine    EngineConfig
}

// EngineConfig carries the guard-rail overrides as config strings; empty
// fields fall back to the engine defaults.
type EngineConfig struct {
	MaxPriceImpact      string
	MaxTradeSizeRatio   string
	InvariantTolerance  string
	MinInitialLiquidity int64
}

// Params converts the config strings into a validated parameter set.
func (c EngineConfig) Params() (types.Params, error) {
	params := types.DefaultParams()

	if c.MaxPriceImpact != "" {
		dec, err := math.LegacyNewDecFromStr(c.MaxPriceImpact)
		if err != nil {
			return types.Params{}, types.ErrInvalidParams.Wrapf("max-price-impact: %v", err)
		}
		params.MaxPriceImpact = dec
	}
	if c.MaxTradeSizeRatio != "" {
		dec, err := math.LegacyNewDecFromStr(c.MaxTradeSizeRatio)
		if err != nil {
			return types.Params{}, types.ErrInvalidParams.Wrapf("max-trade-size-ratio: %v", err)
		}
		params.MaxTradeSizeRatio = dec
	}
	if c.InvariantTolerance != "" {
		dec, err := math.LegacyNewDecFromStr(c.InvariantTolerance)
		if err != nil {
			return types.Params{}, types.ErrInvalidParams.Wrapf("invariant-tolerance: %v", err)
		}
		params.InvariantTolerance = dec
	}
	if c.MinInitialLiquidity > 0 {
		params.MinInitialLiquidity = math.NewInt(c.MinInitialLiquidity)
	}

	if err := params.Validate(); err != nil {
		return types.Params{}, err
	}
	return params, nil
}

// resolveHome returns the orbsim home directory. ORBSIM_HOME wins, then
// the --home flag, then the working directory.
func resolveHome(args []string) string {
	if home := os.Getenv("ORBSIM_HOME"); home != "" {
		return home
	}

	for i, arg := range args {
		if strings.HasPrefix(arg, "--home=") {
			return strings.SplitN(arg, "=", 2)[1]
		}
		if arg == "--home" && i+1 < len(args) {
			return args[i+1]
		}
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// loadConfig reads <home>/orbsim.toml when present and applies environment
// overrides. A missing file is not an error; defaults apply.
func loadConfig(home string) (Config, error) {
	cfg := Config{
		Telemetry: TelemetryConfig{
			Enabled:           false,
			OTLPEndpoint:      defaultOTLPTarget,
			PrometheusEnabled: false,
			MetricsPort:       defaultMetricsPort,
			SampleRate:        defaultSampleRate,
		},
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(filepath.Join(home, configFileName))
	if err := v.ReadInConfig(); err == nil {
		if v.IsSet("telemetry.enabled") {
			cfg.Telemetry.Enabled = cast.ToBool(v.Get("telemetry.enabled"))
		}
		if v.IsSet("telemetry.otlp-endpoint") {
			cfg.Telemetry.OTLPEndpoint = cast.ToString(v.Get("telemetry.otlp-endpoint"))
		}
		if v.IsSet("telemetry.prometheus-enabled") {
			cfg.Telemetry.PrometheusEnabled = cast.ToBool(v.Get("telemetry.prometheus-enabled"))
		}
		if port := cast.ToInt(v.Get("telemetry.metrics-port")); validPort(port) {
			cfg.Telemetry.MetricsPort = port
		}
		if v.IsSet("telemetry.sample-rate") {
			cfg.Telemetry.SampleRate = cast.ToFloat64(v.Get("telemetry.sample-rate"))
		}

		cfg.Engine.MaxPriceImpact = cast.ToString(v.Get("engine.max-price-impact"))
		cfg.Engine.MaxTradeSizeRatio = cast.ToString(v.Get("engine.max-trade-size-ratio"))
		cfg.Engine.InvariantTolerance = cast.ToString(v.Get("engine.invariant-tolerance"))
		cfg.Engine.MinInitialLiquidity = cast.ToInt64(v.Get("engine.min-initial-liquidity"))
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if env := os.Getenv("ORBSIM_TELEMETRY_ENABLED"); env != "" {
		cfg.Telemetry.Enabled = cast.ToBool(env)
	}
	if env := os.Getenv("ORBSIM_OTLP_ENDPOINT"); env != "" {
		cfg.Telemetry.OTLPEndpoint = env
	}
	if env := os.Getenv("ORBSIM_PROMETHEUS_ENABLED"); env != "" {
		cfg.Telemetry.PrometheusEnabled = cast.ToBool(env)
	}
	if env := os.Getenv("ORBSIM_METRICS_PORT"); env != "" {
		if port := cast.ToInt(env); validPort(port) {
			cfg.Telemetry.MetricsPort = port
		}
	}
	if env := os.Getenv("ORBSIM_SAMPLE_RATE"); env != "" {
		cfg.Telemetry.SampleRate = cast.ToFloat64(env)
	}
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}
