package recipe

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Recipes []Recipe `yaml:"recipes"`
}

// Catalog is an in-memory recipe table safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
}

// NewCatalog builds a catalog from recipes. Later recipes replace earlier
// ones with the same name.
func NewCatalog(recipes ...Recipe) *Catalog {
	c := &Catalog{recipes: make(map[string]Recipe, len(recipes))}
	c.Add(recipes...)
	return c
}

// DefaultCatalog returns the built-in recipe table.
func DefaultCatalog() (*Catalog, error) {
	recipes, err := ParseCatalogYAML(defaultCatalogYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in catalog: %w", err)
	}
	return NewCatalog(recipes...), nil
}

// LoadCatalogFile reads recipes from a YAML file with the same layout as the
// built-in catalog.
func LoadCatalogFile(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	recipes, err := ParseCatalogYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return recipes, nil
}

// ParseCatalogYAML decodes a `recipes:` document. Recipes without a name are
// rejected.
func ParseCatalogYAML(data []byte) ([]Recipe, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	for i, r := range file.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("recipe #%d has no name", i+1)
		}
	}
	return file.Recipes, nil
}

// Add inserts or replaces recipes.
func (c *Catalog) Add(recipes ...Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range recipes {
		r.Name = strings.TrimSpace(r.Name)
		ingredients := make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ing.Name = strings.TrimSpace(ing.Name)
			ingredients[i] = ing
		}
		r.Ingredients = ingredients
		c.recipes[Key(r.Name)] = r
	}
}

// Ingredients implements Lookup.
func (c *Catalog) Ingredients(recipeName string) []Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.recipes[Key(recipeName)]
	if !ok {
		return nil
	}
	out := make([]Ingredient, len(r.Ingredients))
	copy(out, r.Ingredients)
	return out
}

// Get returns a recipe by name.
func (c *Catalog) Get(recipeName string) (Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.recipes[Key(recipeName)]
	return r, ok
}

// Recipes returns every recipe sorted by name.
func (c *Catalog) Recipes() []Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return Key(out[i].Name) < Key(out[j].Name) })
	return out
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}
