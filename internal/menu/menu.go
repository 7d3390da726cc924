package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Menu is one week of recipes keyed by weekday.
type Menu struct {
	Week      int            `json:"week" jsonschema:"minimum=1,maximum=53,default=1"`
	Year      int            `json:"year,omitempty" jsonschema:"description=ISO year; defaults to the current year"`
	Monday    []SourceRecipe `json:"monday,omitempty"`
	Tuesday   []SourceRecipe `json:"tuesday,omitempty"`
	Wednesday []SourceRecipe `json:"wednesday,omitempty"`
	Thursday  []SourceRecipe `json:"thursday,omitempty"`
	Friday    []SourceRecipe `json:"friday,omitempty"`
	Saturday  []SourceRecipe `json:"saturday,omitempty"`
	Sunday    []SourceRecipe `json:"sunday,omitempty"`
}

const defaultWeek = 1

// UnmarshalJSON reads only the exact lowercase keys; "Monday" or "WEEK" are
// ignored like any other unknown key. A missing week defaults to 1.
func (m *Menu) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := lo.PickByKeys(raw, menuKeys())
	filtered, err := json.Marshal(known)
	if err != nil {
		return err
	}

	type plain Menu
	var p plain
	if err := json.Unmarshal(filtered, &p); err != nil {
		return err
	}
	if _, ok := known["week"]; !ok {
		p.Week = defaultWeek
	}
	*m = Menu(p)
	return nil
}

func menuKeys() []string {
	keys := []string{"week", "year"}
	for _, d := range Days {
		keys = append(keys, d.Name)
	}
	return keys
}

// Day names a weekday and knows where its recipes live in a Menu.
type Day struct {
	Name    string
	Offset  int
	Recipes func(*Menu) []SourceRecipe
}

// Label returns the capitalised day name.
func (d Day) Label() string {
	return strings.ToUpper(d.Name[:1]) + d.Name[1:]
}

// Days lists the weekdays in processing order, Monday first.
var Days = []Day{
	{Name: "monday", Offset: 0, Recipes: func(m *Menu) []SourceRecipe { return m.Monday }},
	{Name: "tuesday", Offset: 1, Recipes: func(m *Menu) []SourceRecipe { return m.Tuesday }},
	{Name: "wednesday", Offset: 2, Recipes: func(m *Menu) []SourceRecipe { return m.Wednesday }},
	{Name: "thursday", Offset: 3, Recipes: func(m *Menu) []SourceRecipe { return m.Thursday }},
	{Name: "friday", Offset: 4, Recipes: func(m *Menu) []SourceRecipe { return m.Friday }},
	{Name: "saturday", Offset: 5, Recipes: func(m *Menu) []SourceRecipe { return m.Saturday }},
	{Name: "sunday", Offset: 6, Recipes: func(m *Menu) []SourceRecipe { return m.Sunday }},
}

// SourceRecipe is a recipe in the JSON-LD-like shape menus are written in.
type SourceRecipe struct {
	Name               string        `json:"name,omitempty"`
	Description        Text          `json:"description,omitempty"`
	RecipeYield        Text          `json:"recipeYield,omitempty"`
	RecipeIngredient   []string      `json:"recipeIngredient,omitempty"`
	RecipeInstructions []Instruction `json:"recipeInstructions,omitempty"`
	Keywords           Keywords      `json:"keywords,omitempty"`
	Nutrition          *Nutrition    `json:"nutrition,omitempty"`
}

const (
	defaultRecipeName  = "Untitled Recipe"
	defaultRecipeYield = "1"
)

// DisplayName returns the recipe name, or a placeholder when it has none.
func (r SourceRecipe) DisplayName() string {
	if r.Name == "" {
		return defaultRecipeName
	}
	return r.Name
}

// Text is a scalar that menus write as either a JSON string or a number.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// Keywords accepts "a, b" as well as ["a", "b"].
type Keywords string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	*k = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil
		}
		words := lo.FilterMap(list, func(item json.RawMessage, _ int) (string, bool) {
			w, err := scalarString(item)
			w = strings.TrimSpace(w)
			return w, err == nil && w != ""
		})
		*k = Keywords(strings.Join(words, ", "))
		return nil
	}
	// Any other shape carries no usable keywords; inference falls back to
	// the description.
	if s, err := scalarString(trimmed); err == nil {
		*k = Keywords(s)
	}
	return nil
}

// Instruction is a step written either as plain text or as {"text": ...}.
type Instruction struct {
	Text string `json:"text"`
}

func (i *Instruction) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Text Text `json:"text"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		i.Text = string(obj.Text)
		return nil
	}
	s, err := scalarString(trimmed)
	if err != nil {
		return err
	}
	i.Text = s
	return nil
}

// Nutrition holds the schema.org NutritionInformation fields that are copied
// to Mealie.
type Nutrition struct {
	Calories            Text `json:"calories,omitempty"`
	ProteinContent      Text `json:"proteinContent,omitempty"`
	FatContent          Text `json:"fatContent,omitempty"`
	CarbohydrateContent Text `json:"carbohydrateContent,omitempty"`

	fields int
}

func (n *Nutrition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	type plain Nutrition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = Nutrition(p)
	n.fields = len(raw)
	return nil
}

// Present reports whether the menu carried a non-empty nutrition object.
func (n *Nutrition) Present() bool {
	if n == nil {
		return false
	}
	return n.fields > 0 || *n != (Nutrition{})
}

func scalarString(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", fmt.Errorf("expected string or number, got %s", trimmed)
		}
		return n.String(), nil
	}
}

// InputError reports a menu that could not be read or parsed.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("read menu from %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Decode parses a menu document. A missing week defaults to 1; anything
// after the document is an error.
func Decode(r io.Reader) (*Menu, error) {
	var m Menu
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse menu JSON: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse menu JSON: unexpected data after the menu document")
	}
	if m.Week < 1 || m.Week > 53 {
		return nil, fmt.Errorf("week %d out of range 1-53", m.Week)
	}
	return &m, nil
}

// Load reads the menu at path, or from stdin when path is empty.
func Load(path string, stdin io.Reader) (*Menu, error) {
	source := "stdin"
	reader := stdin
	if strings.TrimSpace(path) != "" {
		source = path
		file, err := os.Open(path)
		if err != nil {
			return nil, &InputError{Source: source, Err: err}
		}
		defer func() { _ = file.Close() }()
		reader = file
	}
	if reader == nil {
		return nil, &InputError{Source: source, Err: errors.New("no input")}
	}
	m, err := Decode(reader)
	if err != nil {
		return nil, &InputError{Source: source, Err: err}
	}
	return m, nil
}
