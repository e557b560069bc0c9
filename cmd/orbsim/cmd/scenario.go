package cmd

import (
	"fmt"
	"os"
	"time"

	"cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/orbital-amm/orbital/types"
)

// newRunCmd drives a pool through a scripted JSON scenario. The file holds
// a "steps" array where each step carries an "op" of trade, add, or remove
// plus the op's arguments, for example:
//
//	{"steps": [
//	  {"op": "trade", "asset_in": 0, "asset_out": 1, "amount": "1000"},
//	  {"op": "add", "deposits": ["50000", "0"]},
//	  {"op": "remove", "shares": "10000"}
//	]}
//
// Recoverable rejections (slippage, size, impact) are logged and skipped so
// one bad step does not abort the script.
func newRunCmd(sc *simContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Replay a scripted scenario against the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !gjson.ValidBytes(data) {
				return types.ErrInvalidTradeParams.Wrapf("%s is not valid JSON", args[0])
			}
			steps := gjson.GetBytes(data, "steps").Array()
			if len(steps) == 0 {
				return types.ErrInvalidTradeParams.Wrapf("%s has no steps", args[0])
			}

			ctx, end := sc.rec.StartSpan(cmd.Context(), "scenario")
			defer end()

			runID := uuid.NewString()
			sc.logger.Info("scenario started", "run_id", runID, "file", args[0], "steps", len(steps))

			for i, step := range steps {
				op := step.Get("op").String()
				var stepErr error

				switch op {
				case "trade":
					assetIn := int(step.Get("asset_in").Int())
					assetOut := int(step.Get("asset_out").Int())
					amount, ok := math.NewIntFromString(step.Get("amount").String())
					if !ok {
						return types.ErrInvalidTradeParams.Wrapf("step %d: bad amount %q", i, step.Get("amount").String())
					}
					minOut := math.Int{}
					if raw := step.Get("min_out").String(); raw != "" {
						if minOut, ok = math.NewIntFromString(raw); !ok {
							return types.ErrInvalidTradeParams.Wrapf("step %d: bad min_out %q", i, raw)
						}
					}

					start := time.Now()
					info, err := sc.eng.ExecuteTrade(pool, assetIn, assetOut, amount, minOut)
					sc.rec.RecordTrade(ctx, info, time.Since(start), err == nil)
					if err == nil {
						sc.logger.Info("trade executed",
							"step", i, "in", info.AmountIn, "out", info.AmountOut,
							"segments", info.Segments)
					}
					stepErr = err

				case "add":
					raw := step.Get("deposits").Array()
					deposits := make(types.ReservePoint, len(raw))
					for j, r := range raw {
						n, ok := math.NewIntFromString(r.String())
						if !ok {
							return types.ErrInvalidTradeParams.Wrapf("step %d: bad deposit %q", i, r.String())
						}
						deposits[j] = n
					}
					minted, err := sc.eng.AddLiquidity(pool, deposits)
					if err == nil {
						sc.logger.Info("liquidity added", "step", i, "minted", minted)
					}
					stepErr = err

				case "remove":
					shares, ok := math.NewIntFromString(step.Get("shares").String())
					if !ok {
						return types.ErrInvalidTradeParams.Wrapf("step %d: bad shares %q", i, step.Get("shares").String())
					}
					withdrawal, err := sc.eng.RemoveLiquidity(pool, shares)
					if err == nil {
						sc.logger.Info("liquidity removed", "step", i, "withdrawal", withdrawal.String())
					}
					stepErr = err

				default:
					return types.ErrInvalidTradeParams.Wrapf("step %d: unknown op %q", i, op)
				}

				if stepErr != nil {
					if !types.IsRecoverable(stepErr) {
						return fmt.Errorf("step %d: %w", i, stepErr)
					}
					sc.logger.Info("step rejected, pool unchanged", "step", i, "op", op, "err", stepErr)
				}
			}

			sc.rec.RecordInvariant(ctx, pool)
			if err := savePool(path, pool); err != nil {
				return err
			}

			stats := sc.eng.Telemetry().Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run:              %s\n", runID)
			fmt.Fprintf(out, "steps:            %d\n", len(steps))
			fmt.Fprintf(out, "trades executed:  %d (failed %d)\n", stats.TradesExecuted, stats.TradesFailed)
			fmt.Fprintf(out, "segments total:   %d\n", stats.SegmentsTotal)
			fmt.Fprintf(out, "liquidity events: %d\n", stats.LiquidityEvents)
			fmt.Fprintf(out, "final invariant:  %s\n", pool.InvariantK)
			return nil
		},
	}
}
