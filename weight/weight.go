// Package weight defines the integer weight type shared by every component
// of the decoder: edge weights, dual variables, and edge-growth accumulators.
//
// spec.md requires a "configurable 32/64-bit signed" integer weight with the
// guarantee that sums of weights along any path fit without overflow. This
// module fixes the 64-bit configuration (Weight = int64); a 32-bit build
// would change only this alias (see DESIGN.md Open Question O1) — nothing
// downstream assumes a particular bit width beyond Weight's own arithmetic.
package weight

// Weight is a non-negative integer cost. Dual variables, edge weights, and
// edge-growth accumulators (left_grown/right_grown) all share this type so
// that a path-sum can never silently truncate at a component boundary.
type Weight = int64

// Max is the largest representable Weight, used as a sentinel "infinite
// distance" by the reference matcher and by tie-break comparisons.
const Max Weight = 1<<63 - 1
