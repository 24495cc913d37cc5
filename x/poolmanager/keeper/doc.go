/*
Package keeper implements the pool manager: it routes swaps across pools of
different types, charges the protocol taker fee and splits it between staking
rewards and the community pool.

# Routing

Every pool id is routed to a pool type when the pool is created
(RegisterRoute) and every pool type is bound to exactly one pool module
(SetPoolModules). Resolve turns a pool id into the pool and its module; the
module converts the pool into a CFMM view that the swap engine prices.

RouteExactAmountIn and RouteExactAmountOut execute a route hop by hop inside a
cache context. A failing hop, a failing transfer or a panic discards the
whole cache context, so no pool, balance or tracker changes survive a failed
route. Errors name the 1-indexed hop and pool that failed.

# Spread factor

The spread factor charged on a hop is taken out of the raw constant-function
output: out = raw * (1 - f). The factor may be lower than the pool's own
spread factor, but never below half of it.

# Taker fee

The taker fee is taken from each hop's input before the swap is priced and
parked in the taker fee collector. When the route completes, fees are split
per distribution category (primary or non-primary pair). The split comes from
the fee distribution contract when one is configured and answers both of its
queries with valid shares; otherwise the governance default is used.
*/
package keeper
