package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"recipemd/internal/parser"
	"recipemd/internal/recipe"
	"recipemd/internal/registry"
)

func testBuilder(users ...recipe.User) *Builder {
	return &Builder{
		Parser:   parser.New(),
		Registry: registry.New(users),
		Version:  "1.0.0",
	}
}

func TestNormalizeResolvesUserRefs(t *testing.T) {
	b := testBuilder(recipe.User{Name: "Christine", Photo: "users/christine.jpg"})

	recipes := []*recipe.Recipe{
		{
			ID:      "recipe-1",
			Title:   "Brot",
			Creator: recipe.NameRef("Christine"),
			Comments: []recipe.Comment{
				{User: recipe.NameRef("Oma"), Text: "Gut"},
			},
		},
	}
	b.Normalize(recipes)

	r := recipes[0]
	if !r.Creator.Resolved() || r.Creator.User.Photo != "users/christine.jpg" {
		t.Errorf("creator = %+v, want resolved registry record", r.Creator)
	}
	if !r.Comments[0].User.Resolved() || r.Comments[0].User.User.Name != "Oma" {
		t.Errorf("comment user = %+v, want synthesized record", r.Comments[0].User)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	b := testBuilder(recipe.User{Name: "Christine"})

	make2 := func() []*recipe.Recipe {
		return []*recipe.Recipe{
			{
				ID:       "recipe-1",
				Title:    "Brot",
				Creator:  recipe.NameRef("Christine"),
				Tips:     []string{},
				Comments: []recipe.Comment{{User: recipe.NameRef("Max"), Text: "Gut"}},
			},
			{
				ID:    "recipe-2",
				Title: "Suppe",
				Info:  []string{},
			},
		}
	}

	once := make2()
	b.Normalize(once)

	twice := make2()
	b.Normalize(twice)
	b.Normalize(twice)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\n once %+v\ntwice %+v", once, twice)
	}
}

func TestMerge(t *testing.T) {
	b := testBuilder()

	c := b.Merge([]*recipe.Recipe{
		{ID: "a", Title: "A", Category: "Suppen"},
		{ID: "b", Title: "B", Category: "Backen"},
		{ID: "c", Title: "C", Category: "Suppen"},
	})

	if c.TotalRecipes != 3 || len(c.Recipes) != 3 {
		t.Errorf("totalRecipes = %d, recipes = %d", c.TotalRecipes, len(c.Recipes))
	}
	if want := []string{"Backen", "Suppen"}; !reflect.DeepEqual(c.Categories, want) {
		t.Errorf("categories = %v, want sorted distinct %v", c.Categories, want)
	}
	if c.Version != "1.0.0" || c.GeneratedAt == "" {
		t.Errorf("version/generatedAt = %q/%q", c.Version, c.GeneratedAt)
	}
	// Source order preserved, no deduplication here.
	if c.Recipes[0].ID != "a" || c.Recipes[2].ID != "c" {
		t.Errorf("recipe order changed: %+v", c.Recipes)
	}
}

func TestBuildDirMixedSources(t *testing.T) {
	dir := t.TempDir()

	md := `# Desserts

## Tiramisu

### Zutaten

500g Mascarpone

### Zubereitung

Anrühren
`
	jsonSrc := `[
  {
    "id": "omas-brot",
    "title": "Omas Brot",
    "category": "Backen",
    "creator": "Oma",
    "ingredients": [{"items": ["500g Mehl"]}],
    "instructions": ["Kneten"],
    "tips": []
  }
]`

	writeFile(t, dir, "kochbuch.md", md)
	writeFile(t, dir, "omas-brot.json", jsonSrc)
	writeFile(t, dir, "README.md", "# nicht parsen")
	writeFile(t, dir, "notes.txt", "ignorieren")

	b := testBuilder(recipe.User{Name: "Oma", Photo: "users/oma.jpg"})
	result, err := b.BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}

	c := result.Collection
	if c.TotalRecipes != 2 {
		t.Fatalf("totalRecipes = %d, want 2 (README and txt skipped)", c.TotalRecipes)
	}
	if want := []string{"Backen", "Desserts"}; !reflect.DeepEqual(c.Categories, want) {
		t.Errorf("categories = %v", c.Categories)
	}

	if len(result.Sources) != 2 {
		t.Fatalf("sources = %+v", result.Sources)
	}

	// JSON-loaded recipe got its bare creator resolved and empty tips pruned.
	var brot *recipe.Recipe
	for _, r := range c.Recipes {
		if r.ID == "omas-brot" {
			brot = r
		}
	}
	if brot == nil {
		t.Fatal("imported recipe missing from collection")
	}
	if !brot.Creator.Resolved() || brot.Creator.User.Photo != "users/oma.jpg" {
		t.Errorf("creator = %+v", brot.Creator)
	}
	if brot.Tips != nil {
		t.Errorf("tips = %v, want pruned", brot.Tips)
	}
}

func TestWriteAndReadCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "recipes.json")

	c := testBuilder().Merge([]*recipe.Recipe{
		{ID: "a", Title: "A", Category: "Suppen",
			Ingredients:  []recipe.IngredientSection{{Items: []string{"Wasser"}}},
			Instructions: []string{"Kochen"}},
	})

	if err := WriteCollection(path, c); err != nil {
		t.Fatalf("WriteCollection: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != '{' || !json.Valid(data) {
		t.Fatalf("output is not a JSON document: %s", data[:min(len(data), 40)])
	}

	got, err := ReadCollection(path)
	if err != nil {
		t.Fatalf("ReadCollection: %v", err)
	}
	got.GeneratedAt = c.GeneratedAt
	if !reflect.DeepEqual(got, c) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
