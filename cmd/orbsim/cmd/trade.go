package cmd

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/orbital-amm/orbital/types"
)

func newTradeCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "trade",
		Short: "Execute a trade and persist the updated pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}
			assetIn, assetOut, amount, err := tradePair(cmd)
			if err != nil {
				return err
			}

			minOut := math.Int{}
			if raw, _ := cmd.Flags().GetString(flagMinOut); raw != "" {
				var ok bool
				if minOut, ok = math.NewIntFromString(raw); !ok {
					return types.ErrInvalidTradeParams.Wrapf("min-out %q is not an integer", raw)
				}
			}

			ctx, end := sc.rec.StartSpan(cmd.Context(), "trade")
			defer end()

			start := time.Now()
			info, err := sc.eng.ExecuteTrade(pool, assetIn, assetOut, amount, minOut)
			sc.rec.RecordTrade(ctx, info, time.Since(start), err == nil)
			if err != nil {
				if types.IsRecoverable(err) {
					sc.logger.Info("trade rejected, pool unchanged", "err", err)
				}
				return err
			}
			sc.rec.RecordInvariant(ctx, pool)

			if err := savePool(path, pool); err != nil {
				return err
			}

			printTradeInfo(cmd.OutOrStdout(), info)
			fmt.Fprintf(cmd.OutOrStdout(), "invariant:       %s\n", pool.InvariantK)
			return nil
		},
	}
	addPairFlags(c.Flags())
	c.Flags().String(flagMinOut, "", "reject the trade if the payout falls below this amount")
	return c
}
