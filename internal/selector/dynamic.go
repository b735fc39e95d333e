package selector

import (
	"regexp"
	"strings"
)

// generatedPrefixes are id/class prefixes emitted by frameworks and
// template engines. Identifiers carrying them change on every render or
// build, so a selector using one breaks on the next crawl.
var generatedPrefixes = []string{
	// YUI-generated ids carry a timestamp suffix (Squarespace templates).
	"yui_",
	"yui3-",
	// Squarespace block and template-engine prefixes.
	"sqs-",
	"block-yui",
	// Reactive-framework generated ids.
	"ember",
	"react-",
	"ng-",
	"vue-",
	"svelte-",
	"data-v-",
	// CSS-in-JS generated class prefixes.
	"css-",
	"sc-",
	"jsx-",
	"chakra-",
	"mui-",
	"radix-",
}

// transientStateClasses are UI-state class names toggled at runtime.
// They describe a moment, not an element, so they are useless as identity.
var transientStateClasses = map[string]bool{
	"active":    true,
	"animating": true,
	"collapsed": true,
	"current":   true,
	"disabled":  true,
	"dragging":  true,
	"enabled":   true,
	"entering":  true,
	"error":     true,
	"expanded":  true,
	"fade":      true,
	"fixed":     true,
	"focus":     true,
	"hidden":    true,
	"hover":     true,
	"in":        true,
	"leaving":   true,
	"loading":   true,
	"open":      true,
	"out":       true,
	"selected":  true,
	"show":      true,
	"sticky":    true,
	"success":   true,
	"visible":   true,
}

// digitRunPattern matches a run of ten or more consecutive digits, the
// signature of an embedded timestamp.
var digitRunPattern = regexp.MustCompile(`\d{10,}`)

// trailingHexPattern matches a trailing run of eight or more hex
// characters, the signature of a hash or random suffix.
var trailingHexPattern = regexp.MustCompile(`[0-9a-fA-F]{8,}$`)

// IsDynamicIdentifier reports whether an id or class token is unstable
// across page reloads. An empty token is treated as unstable because it
// cannot identify anything.
func IsDynamicIdentifier(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return true
	}

	lower := strings.ToLower(token)
	for _, prefix := range generatedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	if transientStateClasses[lower] {
		return true
	}

	if digitRunPattern.MatchString(token) {
		return true
	}

	return trailingHexPattern.MatchString(token)
}
