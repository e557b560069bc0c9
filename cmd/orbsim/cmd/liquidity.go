package cmd

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/orbital-amm/orbital/types"
)

func newLiquidityCmd(sc *simContext) *cobra.Command {
	liqCmd := &cobra.Command{
		Use:   "liquidity",
		Short: "Add or remove pool liquidity",
	}
	liqCmd.AddCommand(newLiquidityAddCmd(sc), newLiquidityRemoveCmd(sc))
	return liqCmd
}

func newLiquidityAddCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: "Deposit reserves and mint shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}

			depositsCSV, err := cmd.Flags().GetString("deposits")
			if err != nil {
				return err
			}
			deposits, err := parseCSVAmounts(depositsCSV, "deposits")
			if err != nil {
				return err
			}

			minted, err := sc.eng.AddLiquidity(pool, deposits)
			if err != nil {
				return err
			}
			sc.rec.RecordInvariant(cmd.Context(), pool)
			if err := savePool(path, pool); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "minted %s shares (total %s)\n", minted, pool.TotalShares)
			fmt.Fprintf(cmd.OutOrStdout(), "invariant: %s\n", pool.InvariantK)
			return nil
		},
	}
	c.Flags().String("deposits", "", "deposit per asset, comma separated")
	return c
}

func newLiquidityRemoveCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "remove",
		Short: "Burn shares and withdraw the pro rata reserves",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}

			raw, err := cmd.Flags().GetString("shares")
			if err != nil {
				return err
			}
			shares, ok := math.NewIntFromString(raw)
			if !ok {
				return types.ErrInvalidTradeParams.Wrapf("shares %q is not an integer", raw)
			}

			withdrawal, err := sc.eng.RemoveLiquidity(pool, shares)
			if err != nil {
				return err
			}
			sc.rec.RecordInvariant(cmd.Context(), pool)
			if err := savePool(path, pool); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "withdrew %s (remaining shares %s)\n",
				strings.Join(vectorStrings(withdrawal), ", "), pool.TotalShares)
			return nil
		},
	}
	c.Flags().String("shares", "", "number of shares to burn")
	return c
}
