// Package f provides small generic helpers for slices, maps and sets.
package f

// Map applies fn to every element of s and returns the results.
func Map[T, U any](s []T, fn func(T) U) []U {
	out := make([]U, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// MapMap applies fn to every value of m, keeping the keys.
func MapMap[K comparable, T, U any](m map[K]T, fn func(T) U) map[K]U {
	out := make(map[K]U, len(m))
	for k, v := range m {
		out[k] = fn(v)
	}
	return out
}

// Filtered returns the elements of s for which fn is true, in order.
func Filtered[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// FilteredMap returns the entries of m whose value satisfies fn.
func FilteredMap[K comparable, T any](m map[K]T, fn func(T) bool) map[K]T {
	out := make(map[K]T)
	for k, v := range m {
		if fn(v) {
			out[k] = v
		}
	}
	return out
}

// Find returns the first element of s for which fn is true.
func Find[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// RemoveValue returns s without any occurrence of value.
func RemoveValue[T comparable](s []T, value T) []T {
	return Filtered(s, func(v T) bool { return v != value })
}

// RemoveDuplicates returns s with only the first occurrence of each value.
func RemoveDuplicates[T comparable](s []T) []T {
	seen := make(map[T]bool, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Intersection returns the multiset intersection of s1 and s2: a value
// appears as many times as it occurs in both slices.
func Intersection[T comparable](s1, s2 []T) []T {
	counts := make(map[T]int, len(s2))
	for _, v := range s2 {
		counts[v]++
	}
	out := make([]T, 0)
	for _, v := range s1 {
		if counts[v] > 0 {
			counts[v]--
			out = append(out, v)
		}
	}
	return out
}

// SlicesItemsMatch reports whether s1 and s2 contain the same items with
// the same multiplicity, in any order.
func SlicesItemsMatch[T comparable](s1, s2 []T) bool {
	if len(s1) != len(s2) {
		return false
	}
	counts := make(map[T]int, len(s1))
	for _, v := range s1 {
		counts[v]++
	}
	for _, v := range s2 {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Set is an unordered collection of unique items.
type Set[T comparable] map[T]bool

// NewSet creates an empty Set.
func NewSet[T comparable]() Set[T] {
	return make(Set[T])
}

func (s Set[T]) Add(v T) {
	s[v] = true
}

func (s Set[T]) Remove(v T) {
	delete(s, v)
}

func (s Set[T]) Contains(v T) bool {
	return s[v]
}

// Items returns the set contents in unspecified order.
func (s Set[T]) Items() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}
