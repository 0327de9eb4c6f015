// Package recipe defines the data model shared by the parser, importer,
// builder, and validator.
package recipe

// Comment is a reader remark attached to a recipe, optionally attributed.
type Comment struct {
	User *UserRef `json:"user,omitempty"`
	Text string   `json:"text"`
}

// IngredientSection is a titled or untitled group of ingredient lines,
// e.g. "Für die Sauce" followed by its items.
type IngredientSection struct {
	Title string   `json:"title,omitempty"`
	Items []string `json:"items"`
}

// Recipe is one parsed or imported recipe record.
type Recipe struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Category     string              `json:"category"`
	Duration     string              `json:"duration,omitempty"`
	Servings     string              `json:"servings,omitempty"`
	Creator      *UserRef            `json:"creator,omitempty"`
	CreatedAt    string              `json:"createdAt,omitempty"`
	Ingredients  []IngredientSection `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Tips         []string            `json:"tips,omitempty"`
	Info         []string            `json:"info,omitempty"`
	Comments     []Comment           `json:"comments,omitempty"`
}

// Collection is the merged output document consumed by the front-end.
type Collection struct {
	Version      string    `json:"version"`
	TotalRecipes int       `json:"totalRecipes"`
	Categories   []string  `json:"categories"`
	Recipes      []*Recipe `json:"recipes"`
	GeneratedAt  string    `json:"generatedAt"`
}

// Clean drops optional list fields that are present but empty, so the
// serialized object omits the key instead of emitting [].
func (r *Recipe) Clean() {
	if len(r.Tips) == 0 {
		r.Tips = nil
	}
	if len(r.Info) == 0 {
		r.Info = nil
	}
	if len(r.Comments) == 0 {
		r.Comments = nil
	}
}
