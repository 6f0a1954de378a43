// Package schedule implements the recurring-appointment lifecycle: series
// expansion under a bounded six-month horizon, scoped edits and deletions
// ("only this occurrence" vs. "this and all following" vs. "entire
// series"), and date-based queries over the persisted collection.
//
// The package is a pure function of the injected Store: it holds no state
// of its own and every operation is a full read-modify-write cycle. The
// system assumes a single local writer, so there is no fine-grained
// locking.
package schedule
