package types

// Event types emitted through the engine logger and consumed by the
// simulator and external indexers.
const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeTradeExecuted    = "trade_executed"
	EventTypeTradeFailed      = "trade_failed"
	EventTypeTickCrossed      = "tick_crossed"
	EventTypeTicksConfigured  = "ticks_configured"
)

// Event attribute keys
const (
	AttributeKeyDimension    = "dimension"
	AttributeKeyCurve        = "curve"
	AttributeKeyShapeU       = "shape_u"
	AttributeKeyAssetIn      = "asset_in"
	AttributeKeyAssetOut     = "asset_out"
	AttributeKeyAmountIn     = "amount_in"
	AttributeKeyAmountOut    = "amount_out"
	AttributeKeyFee          = "fee"
	AttributeKeySegments     = "segments"
	AttributeKeyPriceImpact  = "price_impact"
	AttributeKeyInvariantK   = "invariant_k"
	AttributeKeyShares       = "shares"
	AttributeKeyTotalShares  = "total_shares"
	AttributeKeyTickConstant = "tick_constant"
	AttributeKeyTickCount    = "tick_count"
	AttributeKeyReason       = "reason"
)
