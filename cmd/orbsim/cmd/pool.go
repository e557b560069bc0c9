package cmd

import (
	"fmt"
	"os"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/engine"
	"github.com/orbital-amm/orbital/types"
)

const poolFileMode = 0o600

// poolSpec is the on-disk YAML form of a pool. Amounts are strings so the
// file survives values beyond int64 and stays diff-friendly.
type poolSpec struct {
	Dimension   int        `yaml:"dimension"`
	Curve       string     `yaml:"curve"`
	ShapeU      string     `yaml:"shape_u,omitempty"`
	FeeTier     string     `yaml:"fee_tier"`
	Reserves    []string   `yaml:"reserves"`
	Virtual     []string   `yaml:"virtual,omitempty"`
	InvariantK  string     `yaml:"invariant_k,omitempty"`
	TotalShares string     `yaml:"total_shares"`
	TradeCount  uint64     `yaml:"trade_count,omitempty"`
	VolumeIn    []string   `yaml:"volume_in,omitempty"`
	FeesAccrued []string   `yaml:"fees_accrued,omitempty"`
	Ticks       []tickSpec `yaml:"ticks,omitempty"`
}

type tickSpec struct {
	Constant string `yaml:"constant"`
	Depth    string `yaml:"depth"`
	Active   bool   `yaml:"active"`
}

// loadPool reads and reconstructs a pool from its YAML file. A missing
// invariant_k is re-derived from the reserves, so hand-written files only
// need the geometry.
func loadPool(path string) (*types.PoolState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec poolSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	curveType, err := types.CurveTypeFromString(spec.Curve)
	if err != nil {
		return nil, err
	}

	shapeU := math.LegacyZeroDec()
	if spec.ShapeU != "" {
		if shapeU, err = math.LegacyNewDecFromStr(spec.ShapeU); err != nil {
			return nil, types.ErrInvalidCurve.Wrapf("shape_u: %v", err)
		}
	}

	tierName := spec.FeeTier
	if tierName == "" {
		tierName = types.StandardFeeTier.Name
	}
	feeTier, err := types.FeeTierByName(tierName)
	if err != nil {
		return nil, err
	}

	pool := &types.PoolState{
		Dimension:  spec.Dimension,
		Curve:      curveType,
		ShapeU:     shapeU,
		FeeTier:    feeTier,
		TradeCount: spec.TradeCount,
	}

	if pool.Reserves, err = parseVector(spec.Reserves, "reserves"); err != nil {
		return nil, err
	}
	if pool.Virtual, err = parseOptionalVector(spec.Virtual, spec.Dimension, "virtual"); err != nil {
		return nil, err
	}
	if pool.VolumeIn, err = parseOptionalVector(spec.VolumeIn, spec.Dimension, "volume_in"); err != nil {
		return nil, err
	}
	if pool.FeesAccrued, err = parseOptionalVector(spec.FeesAccrued, spec.Dimension, "fees_accrued"); err != nil {
		return nil, err
	}

	pool.TotalShares = math.ZeroInt()
	if spec.TotalShares != "" {
		shares, ok := math.NewIntFromString(spec.TotalShares)
		if !ok {
			return nil, types.ErrInvalidPoolState.Wrapf("total_shares %q is not an integer", spec.TotalShares)
		}
		pool.TotalShares = shares
	}

	for _, ts := range spec.Ticks {
		constant, ok := math.NewIntFromString(ts.Constant)
		if !ok {
			return nil, types.ErrInvalidTick.Wrapf("tick constant %q is not an integer", ts.Constant)
		}
		depth := math.ZeroInt()
		if ts.Depth != "" {
			if depth, ok = math.NewIntFromString(ts.Depth); !ok {
				return nil, types.ErrInvalidTick.Wrapf("tick depth %q is not an integer", ts.Depth)
			}
		}
		pool.Ticks = append(pool.Ticks, types.Tick{
			Constant:       constant,
			LiquidityDepth: depth,
			Active:         ts.Active,
		})
	}
	types.SortTicks(pool.Ticks)

	if spec.InvariantK != "" {
		if pool.InvariantK, err = math.LegacyNewDecFromStr(spec.InvariantK); err != nil {
			return nil, types.ErrInvalidPoolState.Wrapf("invariant_k: %v", err)
		}
	} else {
		cv, err := curve.ForPool(pool)
		if err != nil {
			return nil, err
		}
		if pool.InvariantK, err = cv.Constant(pool.Effective()); err != nil {
			return nil, err
		}
	}

	if err := pool.Validate(); err != nil {
		return nil, err
	}
	return pool, nil
}

// savePool writes the pool back to its YAML file.
func savePool(path string, pool *types.PoolState) error {
	spec := poolSpec{
		Dimension:   pool.Dimension,
		Curve:       pool.Curve.String(),
		FeeTier:     pool.FeeTier.Name,
		Reserves:    vectorStrings(pool.Reserves),
		Virtual:     vectorStrings(pool.Virtual),
		InvariantK:  pool.InvariantK.String(),
		TotalShares: pool.TotalShares.String(),
		TradeCount:  pool.TradeCount,
		VolumeIn:    vectorStrings(pool.VolumeIn),
		FeesAccrued: vectorStrings(pool.FeesAccrued),
	}
	if pool.Curve == types.CurveSuperellipse {
		spec.ShapeU = pool.ShapeU.String()
	}
	for _, tick := range pool.Ticks {
		spec.Ticks = append(spec.Ticks, tickSpec{
			Constant: tick.Constant.String(),
			Depth:    tick.LiquidityDepth.String(),
			Active:   tick.Active,
		})
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, poolFileMode)
}

func parseVector(values []string, field string) (types.ReservePoint, error) {
	if len(values) == 0 {
		return nil, types.ErrInvalidPoolState.Wrapf("%s is empty", field)
	}
	out := make(types.ReservePoint, len(values))
	for i, v := range values {
		n, ok := math.NewIntFromString(strings.TrimSpace(v))
		if !ok {
			return nil, types.ErrInvalidPoolState.Wrapf("%s[%d] %q is not an integer", field, i, v)
		}
		out[i] = n
	}
	return out, nil
}

func parseOptionalVector(values []string, dim int, field string) (types.ReservePoint, error) {
	if len(values) == 0 {
		return types.NewReservePoint(dim), nil
	}
	return parseVector(values, field)
}

func vectorStrings(rp types.ReservePoint) []string {
	out := make([]string, len(rp))
	for i, v := range rp {
		out[i] = v.String()
	}
	return out
}

// parseCSVAmounts turns "100,200" into a reserve point.
func parseCSVAmounts(csv, field string) (types.ReservePoint, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, types.ErrInvalidPoolState.Wrapf("%s is empty", field)
	}
	return parseVector(strings.Split(csv, ","), field)
}

func newPoolCmd(sc *simContext) *cobra.Command {
	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Create and inspect pool state files",
	}
	poolCmd.AddCommand(
		newPoolCreateCmd(sc),
		newPoolShowCmd(sc),
		newPoolTicksCmd(sc),
	)
	return poolCmd
}

func newPoolCreateCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a pool and write its state file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			dimension, err := cmd.Flags().GetInt("dimension")
			if err != nil {
				return err
			}
			curveName, err := cmd.Flags().GetString("curve")
			if err != nil {
				return err
			}
			curveType, err := types.CurveTypeFromString(curveName)
			if err != nil {
				return err
			}

			cfg := engine.PoolConfig{Dimension: dimension, Curve: curveType}

			if shapeU, _ := cmd.Flags().GetString("shape-u"); shapeU != "" {
				if cfg.ShapeU, err = math.LegacyNewDecFromStr(shapeU); err != nil {
					return types.ErrInvalidCurve.Wrapf("shape-u: %v", err)
				}
			}
			if tierName, _ := cmd.Flags().GetString("fee-tier"); tierName != "" {
				if cfg.FeeTier, err = types.FeeTierByName(tierName); err != nil {
					return err
				}
			}
			if deposits, _ := cmd.Flags().GetString("deposits"); deposits != "" {
				if cfg.InitialDeposits, err = parseCSVAmounts(deposits, "deposits"); err != nil {
					return err
				}
			}
			if virtual, _ := cmd.Flags().GetString("virtual"); virtual != "" {
				if cfg.VirtualOffsets, err = parseCSVAmounts(virtual, "virtual"); err != nil {
					return err
				}
			}

			pool, err := sc.eng.CreatePool(cfg)
			if err != nil {
				return err
			}
			if err := savePool(path, pool); err != nil {
				return err
			}
			sc.rec.RecordInvariant(cmd.Context(), pool)

			fmt.Fprintf(cmd.OutOrStdout(), "created %s pool (dimension %d) at %s\n",
				pool.Curve, pool.Dimension, path)
			fmt.Fprintf(cmd.OutOrStdout(), "invariant: %s shares: %s\n",
				pool.InvariantK, pool.TotalShares)
			return nil
		},
	}
	c.Flags().Int("dimension", 2, "number of pool assets")
	c.Flags().String("curve", "sphere", "invariant curve: sphere or superellipse")
	c.Flags().String("shape-u", "", "superellipse shape parameter (u >= 2)")
	c.Flags().String("fee-tier", "", "fee tier name: standard, low, or high")
	c.Flags().String("deposits", "", "initial deposits, comma separated")
	c.Flags().String("virtual", "", "virtual reserve offsets, comma separated")
	return c
}

func newPoolShowCmd(sc *simContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the pool state with derived analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}

			snap, err := sc.eng.Snapshot(pool)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "curve:       %s\n", snap.Curve)
			if snap.Curve == types.CurveSuperellipse {
				fmt.Fprintf(out, "shape u:     %s\n", snap.ShapeU)
			}
			fmt.Fprintf(out, "dimension:   %d\n", snap.Dimension)
			fmt.Fprintf(out, "reserves:    %s\n", strings.Join(vectorStrings(snap.Reserves), ", "))
			if !snap.Virtual.IsZero() {
				fmt.Fprintf(out, "virtual:     %s\n", strings.Join(vectorStrings(snap.Virtual), ", "))
			}
			fmt.Fprintf(out, "invariant:   %s\n", snap.InvariantK)
			fmt.Fprintf(out, "shares:      %s\n", snap.TotalShares)
			fmt.Fprintf(out, "trades:      %d\n", snap.TradeCount)
			fmt.Fprintf(out, "volume in:   %s\n", strings.Join(vectorStrings(snap.VolumeIn), ", "))
			fmt.Fprintf(out, "fees:        %s\n", strings.Join(vectorStrings(snap.FeesAccrued), ", "))
			for _, tick := range snap.Ticks {
				state := "active"
				if !tick.Active {
					state = "inactive"
				}
				fmt.Fprintf(out, "tick %s: depth %s, %s, efficiency %s\n",
					tick.Constant, tick.LiquidityDepth, state, tick.CapitalEfficiency)
			}
			if len(snap.Ticks) > 0 {
				fmt.Fprintf(out, "avg capital efficiency: %s\n", snap.AvgCapitalEfficiency)
			}
			return nil
		},
	}
}

func newPoolTicksCmd(sc *simContext) *cobra.Command {
	c := &cobra.Command{
		Use:   "ticks",
		Short: "Replace the pool's tick boundaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := poolPath(cmd)
			if err != nil {
				return err
			}
			pool, err := loadPool(path)
			if err != nil {
				return err
			}

			constantsCSV, err := cmd.Flags().GetString("constants")
			if err != nil {
				return err
			}
			depthStr, err := cmd.Flags().GetString("depth")
			if err != nil {
				return err
			}
			depth, ok := math.NewIntFromString(depthStr)
			if !ok {
				return types.ErrInvalidTick.Wrapf("depth %q is not an integer", depthStr)
			}

			var ticks []types.Tick
			if strings.TrimSpace(constantsCSV) != "" {
				constants, err := parseCSVAmounts(constantsCSV, "constants")
				if err != nil {
					return err
				}
				for _, c := range constants {
					ticks = append(ticks, types.Tick{
						Constant:       c,
						LiquidityDepth: depth,
						Active:         true,
					})
				}
			}

			if err := sc.eng.SetTicks(pool, ticks); err != nil {
				return err
			}
			if err := savePool(path, pool); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configured %d ticks on %s\n", len(ticks), path)
			return nil
		},
	}
	c.Flags().String("constants", "", "tick boundary constants, comma separated (empty clears)")
	c.Flags().String("depth", "0", "liquidity depth recorded on each tick")
	return c
}
