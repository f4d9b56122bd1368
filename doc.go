// Package costbasis computes the cost basis of crypto-asset disposals for tax
// reporting. It is local-first and auditable: every disposal lists the lots it
// consumed.
//
// The core functionalities include:
//   - Lot Ledger: the Calculator keeps, per asset, the open acquisition lots
//     and matches every disposal against them (FIFO, LIFO, HIFO or average
//     cost), splitting it into a taxable and a tax-free part when a holding
//     period exemption applies.
//   - History Processing: the Accountant replays a History of actions
//     (acquisitions, disposals, spends and swaps) and aggregates profit and
//     loss into a Report, overall and per calendar year.
//   - Data Persistence: histories are human-readable, version-controllable
//     JSONL files; exchange exports are imported through JSONPath mappings;
//     settings live in an INI file.
//
// All amounts are exact decimals. Monetary values are in the reference
// currency of the run.
//
// This package serves as the foundational logic for the `cbt` command-line
// tool.
package costbasis
