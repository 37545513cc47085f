// Package actor provides the cooperative actor runtime of the compositor.
//
// Features:
//   - Private bounded FIFO mailbox per actor
//   - Point-to-point Post and topic Publish with permanent subscriptions
//   - Bounded message storage per weight class; sends never block and are
//     dropped when storage or mailbox capacity is exhausted
//   - Per-actor one-shot and repeating timers driven by a tick source
//   - Single run loop scanning actors by priority; the highest-priority
//     actor with a pending message processes exactly one before rescanning
//
// Actor identities are fixed at registration and double as priorities:
// lower IDs are scanned first.
package actor
