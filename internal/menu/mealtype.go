package menu

import (
	"strings"

	"golang.org/x/text/cases"
)

// MealType is a Mealie meal-plan entry type.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// KeywordRule maps a keyword to the meal type it signals.
type KeywordRule struct {
	Keyword  string
	MealType MealType
}

// KeywordTable is scanned in order; the first rule whose keyword occurs in
// the text wins.
type KeywordTable []KeywordRule

// DefaultKeywordTable recognises the Hungarian meal names used by the menus
// this tool was written for, plus their English equivalents.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		{Keyword: "reggeli", MealType: Breakfast},
		{Keyword: "ebéd", MealType: Lunch},
		{Keyword: "vacsora", MealType: Dinner},
		{Keyword: "snack", MealType: Snack},
		{Keyword: "breakfast", MealType: Breakfast},
		{Keyword: "lunch", MealType: Lunch},
		{Keyword: "dinner", MealType: Dinner},
	}
}

// Match returns the meal type of the first keyword contained in text.
func (t KeywordTable) Match(text string) (MealType, bool) {
	fold := cases.Fold()
	folded := fold.String(text)
	if folded == "" {
		return "", false
	}
	for _, rule := range t {
		keyword := fold.String(strings.TrimSpace(rule.Keyword))
		if keyword != "" && strings.Contains(folded, keyword) {
			return rule.MealType, true
		}
	}
	return "", false
}

// InferMealType looks for a keyword in the recipe keywords, then in its
// description, and falls back to fallback.
//
// Breakfast and lunch recipes without a marker word land on fallback (dinner
// by default); whether menus always carry such a word is not known.
func InferMealType(r SourceRecipe, table KeywordTable, fallback MealType) MealType {
	if mt, ok := table.Match(string(r.Keywords)); ok {
		return mt
	}
	if mt, ok := table.Match(string(r.Description)); ok {
		return mt
	}
	return fallback
}
