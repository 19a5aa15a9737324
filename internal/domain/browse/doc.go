// Package browse implements the pure card-browsing logic: filtering a
// card collection by exam, statute, keyword and read-count bucket, slicing
// the result into pages, and aggregating per-statute read statistics.
// Nothing in this package touches the store or performs I/O.
package browse
