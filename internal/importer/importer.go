// Package importer converts Google Forms CSV exports into recipe records.
// The form collects free-text fields, so the conversion reuses the corpus
// conventions: multi-line blobs split into lines, ingredient section headers
// written as "Für die Sauce:" lines, German category fallback.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"recipemd/internal/recipe"
)

// FormResponse is one row of the form export, mapped onto named fields.
type FormResponse struct {
	Timestamp    string
	Title        string
	Category     string
	Creator      string
	Servings     string
	Duration     string
	Ingredients  string
	Instructions string
	Tips         string
	Info         string
}

// headerFields maps lowercased header fragments to response fields. The form
// has shipped with both German and English column titles over time, so both
// vocabularies are recognized. Order matters: "zeitstempel" must be claimed
// by the timestamp rule before the generic "zeit" duration fragment sees it.
var headerFields = []struct {
	fragments []string
	assign    func(*FormResponse, string)
}{
	{[]string{"timestamp", "zeitstempel"}, func(r *FormResponse, v string) { r.Timestamp = v }},
	{[]string{"titel", "title", "name"}, func(r *FormResponse, v string) { r.Title = v }},
	{[]string{"kategorie", "category"}, func(r *FormResponse, v string) { r.Category = v }},
	{[]string{"ersteller", "creator", "author"}, func(r *FormResponse, v string) { r.Creator = v }},
	{[]string{"portionen", "servings"}, func(r *FormResponse, v string) { r.Servings = v }},
	{[]string{"dauer", "duration", "zeit"}, func(r *FormResponse, v string) { r.Duration = v }},
	{[]string{"zutat", "ingredient"}, func(r *FormResponse, v string) { r.Ingredients = v }},
	{[]string{"zubereitung", "anleitung", "instruction"}, func(r *FormResponse, v string) { r.Instructions = v }},
	{[]string{"tipp", "tip"}, func(r *FormResponse, v string) { r.Tips = v }},
	{[]string{"info", "hinweis"}, func(r *FormResponse, v string) { r.Info = v }},
}

// ParseCSV reads a form export and returns the usable responses. Rows missing
// a title, ingredients, or instructions are skipped; they cannot become a
// recipe worth validating.
func ParseCSV(r io.Reader) ([]FormResponse, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one data row")
	}

	headers := records[0]
	var responses []FormResponse
	for _, row := range records[1:] {
		resp := mapRow(headers, row)
		if resp.Title != "" && resp.Ingredients != "" && resp.Instructions != "" {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

func mapRow(headers []string, row []string) FormResponse {
	var resp FormResponse
	for i, header := range headers {
		if i >= len(row) {
			break
		}
		value := row[i]
		lower := strings.ToLower(strings.TrimSpace(header))
	fields:
		for _, field := range headerFields {
			for _, fragment := range field.fragments {
				if strings.Contains(lower, fragment) {
					field.assign(&resp, value)
					break fields
				}
			}
		}
	}
	return resp
}

// timestampLayouts covers the formats Google Forms has exported so far.
var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"2006/01/02 15:04:05",
	time.RFC3339,
}

// Convert maps a form response onto a recipe record. The id is derived from
// the title so re-imports of the same response stay stable.
func Convert(resp FormResponse) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:           GenerateID(resp.Title),
		Title:        strings.TrimSpace(resp.Title),
		Category:     "Sonstiges",
		Ingredients:  parseIngredients(resp.Ingredients),
		Instructions: splitField(resp.Instructions),
	}
	if c := strings.TrimSpace(resp.Category); c != "" {
		r.Category = c
	}
	if c := strings.TrimSpace(resp.Creator); c != "" {
		r.Creator = recipe.NameRef(c)
	}
	r.CreatedAt = createdAt(resp.Timestamp)
	if s := strings.TrimSpace(resp.Servings); s != "" {
		r.Servings = s
	}
	if d := strings.TrimSpace(resp.Duration); d != "" {
		r.Duration = d
	}
	if tips := splitField(resp.Tips); len(tips) > 0 {
		r.Tips = tips
	}
	if info := splitField(resp.Info); len(info) > 0 {
		r.Info = info
	}
	return r
}

// createdAt normalizes the form timestamp to RFC 3339. An empty timestamp
// falls back to the current time; an unparseable one leaves the field empty
// rather than inventing a date.
func createdAt(timestamp string) string {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}

var (
	umlauts    = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateID derives a stable slug id from a recipe title, transliterating
// German umlauts before collapsing everything else to hyphens.
func GenerateID(title string) string {
	s := umlauts.Replace(strings.ToLower(title))
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// importSectionRe matches ingredient section headers as typed into the form:
// a capitalized line ending in a colon, e.g. "Für die Sauce:". Lines starting
// with a digit are always ingredients ("100g Mehl:" would be a typo, not a
// header, but quantities never start sections).
var importSectionRe = regexp.MustCompile(`(?i)^[A-ZÄÖÜ][^:]*:$`)

func parseIngredients(text string) []recipe.IngredientSection {
	lines := splitField(text)

	var sections []recipe.IngredientSection
	cur := recipe.IngredientSection{Items: []string{}}
	for _, line := range lines {
		if importSectionRe.MatchString(line) && !startsWithDigit(line) {
			if len(cur.Items) > 0 {
				sections = append(sections, cur)
			}
			cur = recipe.IngredientSection{
				Title: strings.TrimSpace(strings.TrimSuffix(line, ":")),
				Items: []string{},
			}
			continue
		}
		cur.Items = append(cur.Items, line)
	}
	if len(cur.Items) > 0 {
		sections = append(sections, cur)
	}
	if len(sections) == 0 {
		return []recipe.IngredientSection{{Items: []string{}}}
	}
	return sections
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// splitField breaks a multi-line form blob into trimmed, non-empty lines.
func splitField(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
