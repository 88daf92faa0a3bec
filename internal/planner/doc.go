// Package planner implements the shooting-schedule optimizer: a generative
// path that asks the backend for a constraint-aware day-by-day plan, and a
// deterministic fallback that partitions scenes into contiguous chunks. The
// fallback trades optimality for determinism and bounded time; it is entered
// silently whenever the backend is absent, erroring, or returns unusable
// output.
package planner
