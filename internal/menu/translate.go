package menu

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/five82/mealie-menu/internal/mealie"
)

// IngredientEnsurer makes sure a food exists on the server.
type IngredientEnsurer interface {
	EnsureIngredientExists(ctx context.Context, name string) (*mealie.Food, bool)
}

// Translator converts source recipes into Mealie recipe documents. It
// creates missing foods as a side effect.
type Translator struct {
	ingredients IngredientEnsurer
	report      Reporter
}

// NewTranslator returns a Translator that ensures foods through ingredients.
func NewTranslator(ingredients IngredientEnsurer, report Reporter) *Translator {
	if report == nil {
		report = Discard
	}
	return &Translator{ingredients: ingredients, report: report}
}

// Translate builds the payload for src, ensuring each parsed food first.
func (t *Translator) Translate(ctx context.Context, src SourceRecipe) mealie.RecipePayload {
	t.report.IngredientsProcessing(len(src.RecipeIngredient))

	ingredients := make([]mealie.RecipeIngredient, 0, len(src.RecipeIngredient))
	for _, line := range src.RecipeIngredient {
		parsed := ParseIngredientText(line)

		food, created := t.ingredients.EnsureIngredientExists(ctx, parsed.Name)
		switch {
		case food == nil:
			t.report.IngredientFailed(parsed.Name)
		case created:
			t.report.IngredientCreated(parsed.Name)
		default:
			t.report.IngredientExists(parsed.Name)
		}

		ingredients = append(ingredients, mealie.RecipeIngredient{
			Note:     parsed.OriginalText,
			Quantity: parsed.Quantity,
			Food:     mealie.FoodReference{Name: parsed.Name},
			Display:  parsed.OriginalText,
		})
	}

	instructions := lo.Map(src.RecipeInstructions, func(step Instruction, idx int) mealie.Instruction {
		return mealie.Instruction{ID: strconv.Itoa(idx), Text: plainText(step.Text)}
	})

	payload := mealie.RecipePayload{
		Name:               src.DisplayName(),
		Description:        string(src.Description),
		RecipeYield:        lo.CoalesceOrEmpty(string(src.RecipeYield), defaultRecipeYield),
		RecipeIngredient:   ingredients,
		RecipeInstructions: instructions,
		Notes:              []string{},
		Tags:               []string{},
		Settings:           mealie.DefaultRecipeSettings(),
	}
	if src.Nutrition.Present() {
		payload.Nutrition = &mealie.Nutrition{
			Calories:            string(src.Nutrition.Calories),
			Protein:             string(src.Nutrition.ProteinContent),
			FatContent:          string(src.Nutrition.FatContent),
			CarbohydrateContent: string(src.Nutrition.CarbohydrateContent),
		}
	}
	return payload
}

var markupPattern = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// plainText drops markup from instruction text scraped from recipe sites.
// Block elements and <br> become line breaks. Text without tags only has
// its entities decoded, so a bare "<" or "&" survives.
func plainText(s string) string {
	if !markupPattern.MatchString(s) {
		return html.UnescapeString(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	lines := lo.FilterMap(strings.Split(doc.Text(), "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
	return strings.Join(lines, "\n")
}
