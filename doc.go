// Package fundtrade reconstructs the trading history of a single open-end
// fund, index proxy, or cash-equivalent position from a sparse, human-entered
// transaction log.
//
// The core is a day-by-day replay: given the status table (one raw value per
// effective date), the instrument's price and corporate-action series, and
// its fee configuration, the engine produces
//   - the complete cash-flow ledger of the position,
//   - the FIFO history of open purchase lots, snapshotted per ledger row,
//     from which holding-period redemption fees and cost basis derive,
//   - point-in-time reports and the money-weighted (XIRR) rate of return.
//
// All inputs are materialized in memory before replay begins; the engine is
// synchronous, deterministic, and immutable once constructed. Acquisition of
// price series and fee tables, persistence, and portfolio-level aggregation
// across instruments are collaborators outside this package.
package fundtrade
