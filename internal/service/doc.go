// SPDX-License-Identifier: Apache-2.0

// Package service implements the agent's business logic: gown mutations
// with offline staging and optimistic updates, event data prefetch into
// the local store, draining the durable operation queue against the
// backend, and the controller that triggers a drain automatically when
// connectivity returns.
//
// The package is organised around four services wired together by
// [NewServices]:
//
//   - [MutationService] accepts gown operations from the control API.
//     While online it forwards them to the backend; while offline it
//     stages them on the durable queue and applies the expected outcome
//     to the cached booking so the operator sees the result right away.
//   - [OfflineCacheService] prefetches an event's working set and
//     answers all reads, local first.
//   - [SyncService] replays the queue in the order operations were
//     performed, classifying failures as retryable or permanent.
//   - [AutoSyncController] watches connectivity and runs a drain and a
//     re-prefetch after an offline period ends.
package service
