// Package casting implements the casting recommendation scorer: an
// embedding-similarity path blended with rule-based match factors, and a
// rule-only fallback used when the generative backend is unavailable. A
// bias audit runs unconditionally for every candidate in both paths and its
// thresholds and penalties are configurable.
package casting
