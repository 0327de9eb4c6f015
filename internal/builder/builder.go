// Package builder drives the full corpus build: scan the data directory,
// parse markdown cookbooks and load pre-structured JSON records, normalize
// everything, and merge the result into a single collection document.
package builder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"recipemd/internal/parser"
	"recipemd/internal/recipe"
	"recipemd/internal/registry"
)

// Builder aggregates recipes from all source files of a corpus directory.
type Builder struct {
	Parser   *parser.Parser
	Registry *registry.Registry
	// Version is stamped into the generated collection.
	Version string
}

// SourceStat reports how many recipes one source file contributed.
type SourceStat struct {
	File    string
	Recipes int
}

// Result is the outcome of a corpus build.
type Result struct {
	Collection *recipe.Collection
	Sources    []SourceStat
}

// BuildDir processes every .md and .json file directly under dir (README
// files excluded), normalizes the recipes, and merges them into a collection.
// Files are visited in directory order; recipe order within a file is the
// parser's emission order.
func (b *Builder) BuildDir(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan recipes directory: %w", err)
	}

	var all []*recipe.Recipe
	var stats []SourceStat
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.Contains(strings.ToLower(name), "readme") {
			continue
		}

		var recipes []*recipe.Recipe
		switch strings.ToLower(filepath.Ext(name)) {
		case ".md":
			recipes, err = b.buildMarkdown(filepath.Join(dir, name))
		case ".json":
			recipes, err = b.loadJSON(filepath.Join(dir, name))
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		all = append(all, recipes...)
		stats = append(stats, SourceStat{File: name, Recipes: len(recipes)})
	}

	b.Normalize(all)
	return &Result{Collection: b.Merge(all), Sources: stats}, nil
}

func (b *Builder) buildMarkdown(path string) ([]*recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.Parser.ParseDocument(data)
}

func (b *Builder) loadJSON(path string) ([]*recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var recipes []*recipe.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parse recipe json: %w", err)
	}
	return recipes, nil
}

// Normalize prunes empty optional fields and resolves bare user references
// against the registry. Running it twice yields the same result as running it
// once: pruned fields stay pruned, resolved references pass through.
func (b *Builder) Normalize(recipes []*recipe.Recipe) {
	for _, r := range recipes {
		r.Clean()
		r.Creator = b.Registry.ResolveRef(r.Creator)
		for i := range r.Comments {
			r.Comments[i].User = b.Registry.ResolveRef(r.Comments[i].User)
		}
	}
}

// Merge assembles the final collection: recipes in insertion order, the
// lexicographically sorted set of distinct categories, and a generation
// timestamp. Duplicate ids or titles across sources are left in place for the
// validation pass to report; silently deduplicating would lose data an editor
// may want to fix.
func (b *Builder) Merge(recipes []*recipe.Recipe) *recipe.Collection {
	seen := map[string]bool{}
	var categories []string
	for _, r := range recipes {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	sort.Strings(categories)
	if categories == nil {
		categories = []string{}
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}

	return &recipe.Collection{
		Version:      b.Version,
		TotalRecipes: len(recipes),
		Categories:   categories,
		Recipes:      recipes,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// WriteCollection serializes the collection with stable 2-space indentation
// for human diffability.
func WriteCollection(path string, c *recipe.Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// ReadCollection loads a generated collection, e.g. for the validation pass.
func ReadCollection(path string) (*recipe.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	var c recipe.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse collection: %w", err)
	}
	return &c, nil
}
