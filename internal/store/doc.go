// Package store provides the durable persistence implementations behind
// schedule.Store: a JSON-file store for production use and an in-memory
// store for tests.
package store
