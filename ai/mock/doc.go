// Package mock provides test doubles for the ai interfaces.
//
// MockEmbedder returns deterministic hash-derived vectors so similarity
// ordering is stable across test runs, and MockGenerator echoes a canned
// answer citing every provided source. Both allow behavior injection via
// function fields.
package mock
