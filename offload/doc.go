// Package offload runs CPU-bound codec work on a background worker pool
// and hands the result back through a future the caller can await.
//
// The host's own scheduler stays unblocked: submitting returns
// immediately, and the await point is the only place a caller suspends.
// Started work is never cancelled; abandoning the await discards the
// result but the work still runs to completion.
package offload
