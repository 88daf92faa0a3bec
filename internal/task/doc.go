// Package task implements the asynchronous task-processing core: a keyed
// task store, a type-partitioned queue, and a worker-pool runner that
// executes registered handlers and writes terminal state back to the store.
//
// The lifecycle is waiting -> active -> completed|failed. Completed and
// failed are terminal; once a task reaches either, the store rejects any
// further mutation. A task is owned by exactly one worker from the moment it
// is dequeued until it reaches a terminal state, while arbitrary pollers may
// read consistent snapshots concurrently.
package task
