// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of where and how tasks are kept.
package store
