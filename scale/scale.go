// Package scale maps data domains onto pixel ranges and back.
//
// Scales are values. Methods that change a domain or range return a modified
// copy, so a scale shared between renderers can be refit by each of them
// without the others observing the change.
package scale

// Scale is a bijection between a domain of T and a pixel range.
type Scale[T any] interface {
	// Forward maps a domain value to a pixel position.
	Forward(v T) float64
	// Invert maps a pixel position back into the domain.
	Invert(px float64) T
	Domain() (min, max T)
	Range() (start, end float64)
	WithDomain(min, max T) Scale[T]
	WithRange(start, end float64) Scale[T]
	// Compare orders two domain values like cmp.Compare.
	Compare(a, b T) int
	// Format returns the natural string form of v.
	Format(v T) string
	// Ticks returns at most n evenly spaced values within the domain.
	Ticks(n int) []T
	// Nice widens the domain to round values suitable for n ticks.
	Nice(n int) Scale[T]
}
