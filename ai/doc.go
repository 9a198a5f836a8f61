// Package ai defines the external model collaborators of the retrieval
// pipeline: an Embedder producing query vectors and a Generator turning an
// assembled context into an answer.
//
// The retrieval core depends only on these interfaces. The local
// subpackage provides an in-process ONNX embedder, the mock subpackage
// provides deterministic test doubles, and callers plug in their own
// Generator backed by whatever language model service they use.
package ai
