package cmd

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/orbital-amm/orbital/types"
)

// newBenchCmd hammers QuoteTrade from concurrent workers. Quotes price
// against a clone of the pool, so the shared state is read-only and the
// workers never contend on it.
func newBenchCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "bench",
		Short: "Measure quote throughput against the pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}

			quotes, err := cmd.Flags().GetInt("quotes")
			if err != nil {
				return err
			}
			workers, err := cmd.Flags().GetInt("workers")
			if err != nil {
				return err
			}
			if quotes <= 0 || workers <= 0 {
				return types.ErrInvalidTradeParams.Wrap("quotes and workers must be positive")
			}
			rawAmount, err := cmd.Flags().GetString("amount")
			if err != nil {
				return err
			}
			amount, ok := math.NewIntFromString(rawAmount)
			if !ok {
				return types.ErrInvalidTradeParams.Wrapf("amount %q is not an integer", rawAmount)
			}

			// A rate of zero means unthrottled.
			targetRate, err := cmd.Flags().GetFloat64("rate")
			if err != nil {
				return err
			}
			var limiter *rate.Limiter
			if targetRate > 0 {
				limiter = rate.NewLimiter(rate.Limit(targetRate), workers)
			}

			ctx, end := sc.rec.StartSpan(cmd.Context(), "bench")
			defer end()

			rejected := atomic.NewUint64(0)
			dim := pool.Dimension

			start := time.Now()
			g := &errgroup.Group{}
			g.SetLimit(workers)
			for i := 0; i < quotes; i++ {
				assetIn := i % dim
				assetOut := (i + 1) % dim
				g.Go(func() error {
					if limiter != nil {
						if err := limiter.Wait(ctx); err != nil {
							return err
						}
					}
					quoteStart := time.Now()
					_, err := sc.eng.QuoteTrade(pool, assetIn, assetOut, amount)
					sc.rec.RecordQuote(ctx, time.Since(quoteStart))
					if err != nil {
						if types.IsRecoverable(err) {
							rejected.Inc()
							return nil
						}
						return err
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "quotes:     %d (rejected %d)\n", quotes, rejected.Load())
			fmt.Fprintf(out, "workers:    %d\n", workers)
			fmt.Fprintf(out, "elapsed:    %s\n", elapsed.Round(time.Microsecond))
			fmt.Fprintf(out, "throughput: %.0f quotes/s\n", float64(quotes)/elapsed.Seconds())
			return nil
		},
	}
	c.Flags().Int("quotes", 10_000, "total quotes to issue")
	c.Flags().Int("workers", 8, "concurrent workers")
	c.Flags().String("amount", "1000", "gross input amount per quote")
	c.Flags().Float64("rate", 0, "target quotes per second, 0 for unthrottled")
	return c
}
