package parser

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"recipemd/internal/recipe"
	"recipemd/internal/token"
)

// docMeta is the optional YAML front matter a cookbook file may carry. It
// supplies per-file defaults: a creator credited on every recipe that has no
// creator of its own, and a starting category used until the first level-1
// heading.
type docMeta struct {
	Creator  string `yaml:"creator"`
	Category string `yaml:"category"`
}

// ParseDocument parses one markdown cookbook into its recipes. The leading
// byte order mark, if any, is stripped; a front matter block is honored when
// present and ignored when absent.
func (p *Parser) ParseDocument(src []byte) ([]*recipe.Recipe, error) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))

	var meta docMeta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	m := &machine{p: p, firstElement: true, category: meta.Category}
	for _, tok := range token.Tokenize(body) {
		m.step(tok)
	}
	m.flush()

	if meta.Creator != "" {
		for _, r := range m.recipes {
			if r.Creator == nil {
				r.Creator = recipe.NameRef(meta.Creator)
			}
		}
	}
	return m.recipes, nil
}
