package parser

import (
	"testing"
)

const sampleDoc = `# Desserts

## Tiramisu

### Zutaten (für 6 Personen)

*Für die Creme:*
500g Mascarpone
3 Eier

Löffelbiskuits

### Zubereitung

30 Minuten
Creme anrühren
Schichten und kühlen
`

func TestParseDocument(t *testing.T) {
	recipes, err := New().ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(recipes))
	}
	r := recipes[0]

	if r.Title != "Tiramisu" || r.Category != "Desserts" {
		t.Errorf("title/category = %q/%q", r.Title, r.Category)
	}
	if r.Servings != "6 Personen" {
		t.Errorf("servings = %q", r.Servings)
	}
	if r.Duration != "30 Minuten" {
		t.Errorf("duration = %q", r.Duration)
	}
	if len(r.Ingredients) != 2 {
		t.Fatalf("ingredients = %+v, want titled section plus untitled", r.Ingredients)
	}
	if r.Ingredients[0].Title != "Für die Creme" || len(r.Ingredients[0].Items) != 2 {
		t.Errorf("first section = %+v", r.Ingredients[0])
	}
	if r.Ingredients[1].Title != "" || r.Ingredients[1].Items[0] != "Löffelbiskuits" {
		t.Errorf("second section = %+v", r.Ingredients[1])
	}
	if len(r.Instructions) != 2 {
		t.Errorf("instructions = %v", r.Instructions)
	}
}

func TestParseDocumentStripsBOM(t *testing.T) {
	doc := "\ufeff" + sampleDoc
	recipes, err := New().ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Category != "Desserts" {
		t.Fatalf("BOM document parsed wrong: %+v", recipes)
	}
}

func TestParseDocumentFrontMatter(t *testing.T) {
	doc := `---
creator: Christine
category: Familienrezepte
---

## Omas Brot

### Zutaten

500g Mehl
`
	recipes, err := New().ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(recipes))
	}
	r := recipes[0]

	if r.Category != "Familienrezepte" {
		t.Errorf("category = %q, want front matter default", r.Category)
	}
	if r.Creator == nil || r.Creator.Name != "Christine" {
		t.Errorf("creator = %+v, want Christine", r.Creator)
	}
}

func TestParseDocumentFrontMatterCategorySuperseded(t *testing.T) {
	doc := `---
category: Familienrezepte
---

# Desserts

## Tiramisu
`
	recipes, err := New().ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Category != "Desserts" {
		t.Fatalf("category = %+v, want level-1 heading to win", recipes)
	}
}
