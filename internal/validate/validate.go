// Package validate performs the post-build diagnostic pass over a generated
// collection. Every finding is a warning: the corpus is hand-authored, so
// data quality issues are reported for an editor to fix, never auto-corrected
// and never blocking a build.
package validate

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"recipemd/internal/recipe"
)

// Collection checks the merged collection and returns the warning list, empty
// when everything is consistent.
func Collection(c *recipe.Collection) []string {
	var warnings []string

	if c.Version == "" {
		warnings = append(warnings, "collection: missing version")
	}
	if c.TotalRecipes != len(c.Recipes) {
		warnings = append(warnings, fmt.Sprintf(
			"collection: totalRecipes (%d) doesn't match actual count (%d)",
			c.TotalRecipes, len(c.Recipes)))
	}

	for i, r := range c.Recipes {
		warnings = append(warnings, recipeWarnings(r, i)...)
	}

	if dups := duplicates(ids(c.Recipes)); len(dups) > 0 {
		warnings = append(warnings, "collection: duplicate recipe ids found: "+strings.Join(dups, ", "))
	}
	if dups := duplicates(titles(c.Recipes)); len(dups) > 0 {
		warnings = append(warnings, "collection: duplicate recipe titles found: "+strings.Join(dups, ", "))
	}

	return warnings
}

// recipeWarnings checks the structural requirements of a single record. All
// of them are survivable absences in the source text, which is why violations
// come back as warnings instead of errors.
func recipeWarnings(r *recipe.Recipe, index int) []string {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Ingredients, validation.Required),
		validation.Field(&r.Instructions, validation.Required),
	)
	if err == nil {
		return nil
	}

	label := r.Title
	if label == "" {
		label = "untitled"
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return []string{fmt.Sprintf("recipe %d (%s): %v", index, label, err)}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	warnings := make([]string, 0, len(fields))
	for _, field := range fields {
		warnings = append(warnings, fmt.Sprintf("recipe %d (%s): %s: %v", index, label, field, errs[field]))
	}
	return warnings
}

func ids(recipes []*recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func titles(recipes []*recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

// duplicates returns the values that appear more than once, in first-seen
// order, each reported a single time.
func duplicates(values []string) []string {
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}

	var dups []string
	reported := map[string]bool{}
	for _, v := range values {
		if counts[v] > 1 && !reported[v] {
			reported[v] = true
			dups = append(dups, v)
		}
	}
	return dups
}
