// Package core provides the record store and query engine for the mock
// identity registry.
//
// This package holds all domain logic independent of any UI or transport
// layer. It is used by the HTTP server, the idcli tool and tests without
// modification.
//
// # Architecture
//
//   - Store: the immutable id -> Record mapping, built once from a dataset
//     snapshot. Iteration follows dataset order.
//   - Engine: read-only queries over a Store (search, sample, stats,
//     distinct states and cities).
//   - Service: the entry point for adapters. It type-checks raw input,
//     bounds full-store passes with a [ScanLimiter] and records metrics.
//
// # Datasets
//
// A dataset is a JSON object keyed by 12-digit id. [ReadDataset] streams it
// in file order; [LoadPostgres] reads the same shape from a table.
// [Reduce] produces a uniformly random subset for smaller deployments.
//
//	records, err := core.LoadFile("data/mockData.json")
//	store, err := core.NewStore(records)
//	svc := core.NewService(store, cfg, m)
//
// # Error Handling
//
// Sentinel errors ([ErrInvalidArgument], [ErrNotFound], [ErrInvalidRecord],
// [ErrDuplicateID], [ErrInvalidDataset]) are matched with errors.Is.
// [ErrMissingID], [ErrInvalidID] and [ErrInvalidCriteria] refine
// ErrInvalidArgument. [MapError] turns any error into a user-facing message
// with a code:
//
//   - ARG000-ARG003: Invalid argument, id or search criteria, missing id
//   - REC001: Record not found
//   - DATA001-DATA002: Dataset errors
//   - SYS001, REQ001-REQ002, RATE001: Load and request errors
package core
