package catalog

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter returns the planets matching term. A plain term is a
// case-insensitive substring match on name, host star and discovery
// method; a term containing glob metacharacters is matched as a pattern
// against name and host star. An empty term matches everything.
func Filter(planets []Exoplanet, term string) []Exoplanet {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return planets
	}

	match := substringMatcher(term)
	if isGlob(term) && doublestar.ValidatePattern(term) {
		match = globMatcher(term)
	}

	out := make([]Exoplanet, 0, len(planets))
	for _, p := range planets {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Limit returns at most n planets; n <= 0 means no limit.
func Limit(planets []Exoplanet, n int) []Exoplanet {
	if n <= 0 || len(planets) <= n {
		return planets
	}
	return planets[:n]
}

func isGlob(term string) bool {
	return strings.ContainsAny(term, "*?[{")
}

func substringMatcher(term string) func(Exoplanet) bool {
	return func(p Exoplanet) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Host), term) ||
			strings.Contains(strings.ToLower(p.DiscMethod), term)
	}
}

func globMatcher(pattern string) func(Exoplanet) bool {
	return func(p Exoplanet) bool {
		for _, s := range []string{p.Name, p.Host} {
			if ok, _ := doublestar.Match(pattern, strings.ToLower(s)); ok {
				return true
			}
		}
		return false
	}
}
