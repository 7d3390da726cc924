package menu

import (
	"regexp"
	"strings"
)

// ParsedIngredient splits an ingredient line into amount and food name.
type ParsedIngredient struct {
	Quantity     string
	Name         string
	OriginalText string
}

// A leading run of digits, dots and hyphens ("30", "50-100", "0.5"),
// optionally followed by a unit word, then whitespace and the name.
var quantityPattern = regexp.MustCompile(`^([\d\-.]+\s*[a-zA-Z]*)\s+(.+)$`)

// ParseIngredientText splits lines like "30 g ajvár" into "30 g" and
// "ajvár". Lines without a leading amount ("a pinch of salt") keep the whole
// text as the name and an empty quantity.
func ParseIngredientText(text string) ParsedIngredient {
	trimmed := strings.TrimSpace(text)
	parsed := ParsedIngredient{Name: trimmed, OriginalText: text}
	if m := quantityPattern.FindStringSubmatch(trimmed); m != nil {
		parsed.Quantity = strings.TrimSpace(m[1])
		parsed.Name = strings.TrimSpace(m[2])
	}
	return parsed
}
