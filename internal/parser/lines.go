package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"recipemd/internal/recipe"
)

var (
	// commentRe splits on the first colon only: a prefix without colons is
	// taken as the user name, everything after as the remark. A prefix
	// containing punctuation but no colon (e.g. "Note") is still treated
	// as a name; that is a known heuristic boundary, not a bug.
	commentRe      = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	commentShapeRe = regexp.MustCompile(`^[^:]+:\s*.+$`)

	// sectionHeaderRe matches a line fully wrapped in emphasis markers,
	// the convention for titled ingredient sub-sections: *Für die Sauce:*
	sectionHeaderRe = regexp.MustCompile(`^[*_](.+?)[*_]$`)
	trailingColonRe = regexp.MustCompile(`:\s*$`)
)

// durationHints and durationMaxLen drive the single-shot duration sniff on
// the first instruction line. Both are tuned against the corpus; changing
// them is a behavior change, not a fix.
var durationHints = []string{"minute", "stunde", "std", "min"}

const durationMaxLen = 40

// parseCommentLine turns one trimmed, non-empty line into an attributed
// comment. Lines of the form "Name: remark" keep their author; everything
// else is credited to the configured default user.
func (p *Parser) parseCommentLine(line string) recipe.Comment {
	if m := commentRe.FindStringSubmatch(line); m != nil {
		return recipe.Comment{
			User: recipe.NameRef(strings.TrimSpace(m[1])),
			Text: strings.TrimSpace(m[2]),
		}
	}
	c := recipe.Comment{Text: strings.TrimSpace(line)}
	if p.DefaultCommentUser != "" {
		c.User = recipe.NameRef(p.DefaultCommentUser)
	}
	return c
}

// splitIngredientSections splits the raw content of an ingredients block into
// titled sub-sections and untitled item lists. Lines wrapped in emphasis
// (*...* or _..._) open a new section; the trailing colon inside the emphasis
// is stripped from the title. Item and section order is preserved exactly.
//
// The result is never empty: with no content at all, a single untitled
// placeholder section is returned so callers can decide whether to prune it.
func splitIngredientSections(content string) []recipe.IngredientSection {
	var sections []recipe.IngredientSection
	cur := recipe.IngredientSection{Items: []string{}}

	for _, line := range splitLines(content) {
		if m := sectionHeaderRe.FindStringSubmatch(line); m != nil {
			if len(cur.Items) > 0 {
				sections = append(sections, cur)
			}
			cur = recipe.IngredientSection{
				Title: trailingColonRe.ReplaceAllString(m[1], ""),
				Items: []string{},
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			cur.Items = append(cur.Items, line)
		}
	}
	if len(cur.Items) > 0 {
		sections = append(sections, cur)
	}
	if len(sections) == 0 {
		return []recipe.IngredientSection{{Items: []string{}}}
	}
	return sections
}

// splitInstructions applies the duration sniff to the first line of an
// instructions block, then classifies each remaining line as either a step or
// a misplaced comment. Authors sometimes embed reader remarks directly in the
// preparation steps; lines shaped like "Name: remark" are reclassified here
// instead of in a separate document pass.
func (p *Parser) splitInstructions(content string) (duration string, steps []string, comments []recipe.Comment) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) >= 1 && looksLikeDuration(lines[0]) {
		duration = lines[0]
		lines = lines[1:]
	}
	for _, line := range lines {
		if line == "" {
			continue
		}
		if commentShapeRe.MatchString(line) {
			comments = append(comments, p.parseCommentLine(line))
		} else {
			steps = append(steps, line)
		}
	}
	return duration, steps, comments
}

// looksLikeDuration is the single-shot heuristic for a leading duration
// phrase: short enough and mentioning a time unit. It never re-triggers on
// later lines even if they also look like durations.
func looksLikeDuration(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > durationMaxLen {
		return false
	}
	lower := strings.ToLower(line)
	for _, hint := range durationHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// splitLines trims the block, splits it on newlines, and drops blank lines.
func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
