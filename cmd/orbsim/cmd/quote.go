package cmd

import (
	"fmt"
	"io"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/orbital-amm/orbital/types"
)

// tradePair reads the asset-in, asset-out, and amount flags shared by the
// quote and trade commands.
func tradePair(cmd *cobra.Command) (assetIn, assetOut int, amount math.Int, err error) {
	if assetIn, err = cmd.Flags().GetInt(flagAssetIn); err != nil {
		return 0, 0, math.Int{}, err
	}
	if assetOut, err = cmd.Flags().GetInt(flagAssetOut); err != nil {
		return 0, 0, math.Int{}, err
	}
	raw, err := cmd.Flags().GetString(flagAmount)
	if err != nil {
		return 0, 0, math.Int{}, err
	}
	amount, ok := math.NewIntFromString(raw)
	if !ok {
		return 0, 0, math.Int{}, types.ErrInvalidTradeParams.Wrapf("amount %q is not an integer", raw)
	}
	return assetIn, assetOut, amount, nil
}

func printTradeInfo(w io.Writer, info *types.TradeInfo) {
	fmt.Fprintf(w, "amount in:       %s (fee %s)\n", info.AmountIn, info.Fee)
	fmt.Fprintf(w, "amount out:      %s\n", info.AmountOut)
	fmt.Fprintf(w, "effective price: %s\n", info.EffectivePrice())
	fmt.Fprintf(w, "price impact:    %s\n", info.PriceImpact)
	fmt.Fprintf(w, "segments:        %d (crossed %d boundaries)\n",
		info.Segments, info.CrossedBoundaries())
}

func newQuoteCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "quote",
		Short: "Price a trade without touching the pool",
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

			ctx, end := sc.rec.StartSpan(cmd.Context(), "quote")
			defer end()

			start := time.Now()
			info, err := sc.eng.QuoteTrade(pool, assetIn, assetOut, amount)
			sc.rec.RecordQuote(ctx, time.Since(start))
			if err != nil {
				return err
			}

			printTradeInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
	addPairFlags(c.Flags())
	return c
}
