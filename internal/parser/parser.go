// Package parser reconstructs structured recipes from loosely formatted
// markdown cookbooks. It walks the flattened token stream produced by the
// token package and assembles one recipe per level-2 heading, with level-1
// headings acting as category markers and level-3 headings selecting the
// active section (ingredients, instructions, comments, tips, info).
//
// The parser is deliberately permissive: the source documents are
// hand-authored prose, so malformed structure is ignored rather than
// reported. Structural problems surface later in the validation pass.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"recipemd/internal/recipe"
	"recipemd/internal/token"
)

// Parser holds the editorial knobs of the markdown pass. The zero value is
// usable; New fills in the historical defaults.
type Parser struct {
	// DefaultCommentUser is attributed to comment lines that carry no
	// "Name:" prefix. Empty leaves such comments unattributed.
	DefaultCommentUser string
	// FallbackCategory is assigned to recipes that appear before any
	// level-1 heading.
	FallbackCategory string
}

// New returns a parser with the historical defaults.
func New() *Parser {
	return &Parser{
		DefaultCommentUser: "Christine",
		FallbackCategory:   "Uncategorized",
	}
}

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
	sectionComments
	sectionTips
	sectionInfo
)

// sectionKeywords maps level-3 heading prefixes to section kinds. The
// vocabulary is fixed and matches the corpus language; headings that match
// none of the prefixes leave the section at none, so their content is
// swallowed rather than bleeding into the previous section.
var sectionKeywords = []struct {
	prefix string
	kind   section
}{
	{"Zutaten", sectionIngredients},
	{"Zubereitungszeit", sectionInstructions},
	{"Zubereitung", sectionInstructions},
	{"Kommentar", sectionComments},
	{"Tipp", sectionTips},
	{"Info", sectionInfo},
}

var servingsRe = regexp.MustCompile(`\(für (.+?)\)`)

// machine is the per-document state of the recipe stream walk.
type machine struct {
	p *Parser

	recipes      []*recipe.Recipe
	cur          *recipeBuilder
	headingLevel int // level of the currently open heading, 0 outside headings
	section      section
	firstElement bool // next inline token is a heading's own label text
	category     string
	counter      int
}

// Parse runs the state machine over a token stream and returns the recipes in
// document order. Recipe ids are allocated sequentially per call.
func (p *Parser) Parse(tokens []token.Token) []*recipe.Recipe {
	m := &machine{p: p, firstElement: true}
	for _, tok := range tokens {
		m.step(tok)
	}
	m.flush()
	return m.recipes
}

func (m *machine) step(tok token.Token) {
	switch tok.Kind {
	case token.HeadingOpen:
		m.openHeading(tok.Level)
	case token.HeadingClose:
		if tok.Level == m.headingLevel {
			m.headingLevel = 0
		}
	case token.Inline:
		if tok.Content != "" {
			m.inline(tok.Content)
		}
	}
}

func (m *machine) openHeading(level int) {
	switch level {
	case 1:
		m.headingLevel = 1
	case 2:
		m.flush()
		m.counter++
		m.cur = newRecipeBuilder(fmt.Sprintf("recipe-%d", m.counter), m.currentCategory())
		m.headingLevel = 2
		m.section = sectionNone
	case 3:
		m.headingLevel = 3
		m.section = sectionNone
	}
}

func (m *machine) inline(content string) {
	if m.headingLevel == 1 {
		m.category = content
	}
	if m.headingLevel == 2 {
		if m.cur != nil {
			m.cur.title = content
		}
	} else if m.headingLevel == 3 {
		m.enterSection(content)
		m.firstElement = true
	}

	// The first inline token after a heading open is the heading's own
	// label text, already consumed above. Everything after it is body.
	if m.firstElement {
		m.firstElement = false
		return
	}
	if m.cur == nil {
		return
	}

	switch m.section {
	case sectionIngredients:
		for _, sec := range splitIngredientSections(content) {
			if len(sec.Items) > 0 {
				m.cur.ingredients = append(m.cur.ingredients, sec)
			}
		}
	case sectionInstructions:
		duration, steps, comments := m.p.splitInstructions(content)
		if duration != "" {
			m.cur.duration = duration
		}
		m.cur.instructions = append(m.cur.instructions, steps...)
		m.cur.comments = append(m.cur.comments, comments...)
	case sectionComments:
		for _, line := range splitLines(content) {
			m.cur.comments = append(m.cur.comments, m.p.parseCommentLine(line))
		}
	case sectionTips:
		m.cur.tips = append(m.cur.tips, splitLines(content)...)
	case sectionInfo:
		m.cur.info = append(m.cur.info, splitLines(content)...)
	}
}

// enterSection matches a level-3 heading label against the keyword table and,
// for the ingredients heading, lifts a servings count out of a parenthetical
// suffix like "Zutaten (für 4 Portionen)".
func (m *machine) enterSection(label string) {
	for _, kw := range sectionKeywords {
		if !strings.HasPrefix(label, kw.prefix) {
			continue
		}
		m.section = kw.kind
		if kw.kind == sectionIngredients && m.cur != nil {
			if match := servingsRe.FindStringSubmatch(label); match != nil {
				m.cur.servings = match[1]
			}
		}
		return
	}
}

// flush emits the in-progress recipe if it acquired a title. Title-less
// records are discarded so a stray heading without content never surfaces.
func (m *machine) flush() {
	if m.cur != nil && m.cur.title != "" {
		m.recipes = append(m.recipes, m.cur.build())
	}
	m.cur = nil
}

func (m *machine) currentCategory() string {
	if m.category != "" {
		return m.category
	}
	return m.p.fallbackCategory()
}

func (p *Parser) fallbackCategory() string {
	if p.FallbackCategory != "" {
		return p.FallbackCategory
	}
	return "Uncategorized"
}

// recipeBuilder accumulates one in-progress recipe. It is converted into an
// immutable recipe.Recipe only at emission time, so partially built state is
// never aliased across recipe boundaries.
type recipeBuilder struct {
	id       string
	title    string
	category string
	servings string
	duration string

	ingredients  []recipe.IngredientSection
	instructions []string
	tips         []string
	info         []string
	comments     []recipe.Comment
}

func newRecipeBuilder(id, category string) *recipeBuilder {
	return &recipeBuilder{id: id, category: category}
}

func (b *recipeBuilder) build() *recipe.Recipe {
	r := &recipe.Recipe{
		ID:           b.id,
		Title:        b.title,
		Category:     b.category,
		Servings:     b.servings,
		Duration:     b.duration,
		Ingredients:  b.ingredients,
		Instructions: b.instructions,
		Tips:         b.tips,
		Info:         b.info,
		Comments:     b.comments,
	}
	if r.Ingredients == nil {
		r.Ingredients = []recipe.IngredientSection{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	return r
}
