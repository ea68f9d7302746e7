// Package attribution computes contributor line ownership for a git repository.
//
// The Aggregator blames and walks the history of every tracked file in
// parallel and merges the per-file results into a Report keyed by author name.
// The analyze command wires the aggregator to the git client, a progress
// reporter, and the report writers.
package attribution
