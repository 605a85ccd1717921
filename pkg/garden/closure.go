package garden

// Closure expands seeds to the transitive set of glyph names reachable
// through componentsOf: every seed, every component of a seed, and so on.
// componentsOf must return an empty slice for unknown names; components
// referencing nonexistent glyphs are thereby dropped from the expansion.
//
// The traversal is an iterative depth-first search over an explicit
// stack. A name already in the result is not re-expanded, which makes
// cyclic component graphs terminate; the cycle itself is accepted
// silently.
func Closure(seeds map[string]bool, componentsOf func(string) []string) map[string]bool {
	result := make(map[string]bool, len(seeds))
	stack := make([]string, 0, len(seeds))
	for name := range seeds {
		stack = append(stack, name)
	}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		revisited := result[name] // diamond dependency or component cycle
		if revisited {
			continue
		}
		result[name] = true
		stack = append(stack, componentsOf(name)...)
	}
	return result
}
