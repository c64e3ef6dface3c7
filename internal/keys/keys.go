package keys

// Package keys centralizes Redis key construction for the Redis-backed
// queue. It is kept in internal to avoid leaking key formats to public API.

// Pending returns the LIST key holding serialized pending tasks.
func Pending(q string) string { return "spiderkit:{" + q + "}:pending" }

// Seen returns the SET key tracking task identities already enqueued.
func Seen(q string) string { return "spiderkit:{" + q + "}:seen" }
