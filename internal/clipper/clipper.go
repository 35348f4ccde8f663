package clipper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meal-planner/internal/recipe"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoIngredients is returned when a page has no recognizable ingredient list.
var ErrNoIngredients = errors.New("no ingredients found")

// RecipeSaver persists clipped recipes.
type RecipeSaver interface {
	Save(ctx context.Context, rec recipe.Recipe) error
}

// Clipper fetches recipe pages and adds their ingredients to the catalog.
type Clipper struct {
	client  *http.Client
	saver   RecipeSaver
	catalog *recipe.Catalog
}

// NewClipper creates a new Clipper instance. saver and catalog may be nil.
func NewClipper(timeout time.Duration, saver RecipeSaver, catalog *recipe.Catalog) *Clipper {
	return &Clipper{
		client:  &http.Client{Timeout: timeout},
		saver:   saver,
		catalog: catalog,
	}
}

// ClipURL fetches the URL, extracts the recipe, saves it and makes it
// available to imports.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	rec, err := Extract(doc)
	if err != nil {
		return nil, err
	}
	rec.SourceURL = url

	if c.saver != nil {
		if err := c.saver.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
		}
	}
	if c.catalog != nil {
		c.catalog.Add(rec)
	}
	return &rec, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

var ingredientSelectors = []string{
	"[itemprop=recipeIngredient]",
	"[itemprop=ingredients]",
	".wprm-recipe-ingredient",
	".tasty-recipes-ingredients li",
	".ingredients li",
}

// Extract reads a recipe from an HTML page. schema.org JSON-LD data is
// preferred; otherwise the first matching ingredient markup is used.
func Extract(doc *goquery.Document) (recipe.Recipe, error) {
	title, lines := fromJSONLD(doc)

	if len(lines) == 0 {
		for _, sel := range ingredientSelectors {
			doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
				lines = append(lines, s.Text())
			})
			if len(lines) > 0 {
				break
			}
		}
	}

	if title == "" {
		title = cleanText(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = cleanText(doc.Find("title").First().Text())
	}

	rec := recipe.Recipe{Name: title}
	for _, line := range lines {
		if ing, ok := recipe.ParseIngredientLine(line); ok {
			rec.Ingredients = append(rec.Ingredients, ing)
		}
	}

	if len(rec.Ingredients) == 0 {
		return recipe.Recipe{}, ErrNoIngredients
	}
	if rec.Name == "" {
		return recipe.Recipe{}, fmt.Errorf("failed to extract recipe: page has no title")
	}
	return rec, nil
}

type ldRecipe struct {
	Type             json.RawMessage `json:"@type"`
	Name             string          `json:"name"`
	RecipeIngredient []string        `json:"recipeIngredient"`
	Graph            []ldRecipe      `json:"@graph"`
}

func (r ldRecipe) isRecipe() bool {
	var single string
	if json.Unmarshal(r.Type, &single) == nil {
		return single == "Recipe"
	}
	var many []string
	if json.Unmarshal(r.Type, &many) == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

func fromJSONLD(doc *goquery.Document) (string, []string) {
	var title string
	var lines []string

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var nodes []ldRecipe
		raw := []byte(s.Text())
		if err := json.Unmarshal(raw, &nodes); err != nil {
			var node ldRecipe
			if err := json.Unmarshal(raw, &node); err != nil {
				return true
			}
			nodes = []ldRecipe{node}
		}

		for _, n := range flatten(nodes) {
			if n.isRecipe() && len(n.RecipeIngredient) > 0 {
				title = cleanText(n.Name)
				lines = n.RecipeIngredient
				return false
			}
		}
		return true
	})

	return title, lines
}

func flatten(nodes []ldRecipe) []ldRecipe {
	var out []ldRecipe
	for _, n := range nodes {
		out = append(out, n)
		out = append(out, flatten(n.Graph)...)
	}
	return out
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
