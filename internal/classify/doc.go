// Package classify implements the novelty classifier for freshly fetched
// article batches.
//
// Classify partitions a batch into five disjoint buckets - old, blocked by
// title, blocked by date, blocked by filter, deliverable - against an
// immutable reference-set snapshot of previously recognized articles. The
// same call serves both the production delivery path and the diagnostic
// report, so the two can never drift: the decision and its explanation come
// from a single evaluation.
//
// The classifier is a pure, synchronous computation. It performs no I/O,
// mutates neither the batch nor the reference set, and may run concurrently
// for different feeds. Merging deliverable identities back into the
// reference set is the calling delivery pipeline's job, after confirmed
// send.
package classify
