package main

import (
	"context"
	"os"
	"time"

	"cosmossdk.io/log"

	"github.com/orbital-amm/orbital/cmd/orbsim/cmd"
)

func main() {
	home := resolveHome(os.Args[1:])
	cfg, err := loadConfig(home)
	if err != nil {
		os.Stderr.WriteString("orbsim: " + err.Error() + "\n")
		os.Exit(1)
	}

	tel, err := initTelemetry(cfg.Telemetry)
	if err != nil {
		os.Stderr.WriteString("orbsim: telemetry init: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.Telemetry.PrometheusEnabled {
		StartPrometheusServer(cfg.Telemetry.MetricsPort)
	}

	params, err := cfg.Engine.Params()
	if err != nil {
		os.Stderr.WriteString("orbsim: engine config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.NewLogger(os.Stderr)
	recorder, err := cmd.NewRecorder(tel.Meter())
	if err != nil {
		os.Stderr.WriteString("orbsim: recorder init: " + err.Error() + "\n")
		os.Exit(1)
	}

	rootCmd := cmd.NewRootCmd(logger, params, recorder)
	execErr := rootCmd.Execute()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := tel.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown", "err", err)
	}
	cancel()

	if execErr != nil {
		os.Exit(1)
	}
}
