package cmd

import (
	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/orbital-amm/orbital/engine"
	"github.com/orbital-amm/orbital/types"
)

const (
	flagHome     = "home"
	flagPoolFile = "pool"
	flagAssetIn  = "asset-in"
	flagAssetOut = "asset-out"
	flagAmount   = "amount"
	flagMinOut   = "min-out"
)

// simContext carries what every command handler needs. Commands close over
// it instead of reaching for package globals.
type simContext struct {
	logger log.Logger
	eng    *engine.Engine
	rec    *Recorder
}

// NewRootCmd assembles the orbsim command tree around one engine instance.
func NewRootCmd(logger log.Logger, params types.Params, rec *Recorder) *cobra.Command {
	sc := &simContext{
		logger: logger,
		eng:    engine.New(engine.WithLogger(logger), engine.WithParams(params)),
		rec:    rec,
	}

	root := &cobra.Command{
		Use:          "orbsim",
		Short:        "Simulator for sphere and superellipse AMM pools",
		Long: `orbsim drives the orbital AMM engine against pool state held in local
YAML files: create pools, configure tick boundaries, quote and execute
trades, manage liquidity, and replay scenario files.`,
		SilenceUsage: true,
	}

	// The home flag is consumed before cobra parses; declared here so it
	// shows in help and is not rejected.
	root.PersistentFlags().String(flagHome, "", "orbsim home directory (config location)")
	root.PersistentFlags().String(flagPoolFile, "pool.yaml", "path of the pool state file")

	root.AddCommand(
		newPoolCmd(sc),
		newQuoteCmd(sc),
		newTradeCmd(sc),
		newLiquidityCmd(sc),
		newRunCmd(sc),
		newBenchCmd(sc),
	)
	return root
}

// addPairFlags registers the asset-pair and amount flags shared by the
// quote and trade commands.
func addPairFlags(fs *pflag.FlagSet) {
	fs.Int(flagAssetIn, 0, "index of the asset paid in")
	fs.Int(flagAssetOut, 1, "index of the asset received")
	fs.String(flagAmount, "", "gross input amount in base units")
}

func poolPath(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString(flagPoolFile)
}
