package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	db "meal-planner/internal/recipe/recipe_db"
)

// Repository is a database-backed repository for recipes added at runtime.
type Repository struct {
	queries *db.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// Save inserts or replaces a recipe, keyed by its normalized name.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return fmt.Errorf("failed to save recipe: name is empty")
	}

	recipeJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe to JSON: %w", err)
	}

	err = r.queries.UpsertRecipe(ctx, db.UpsertRecipeParams{
		NameKey:   Key(rec.Name),
		Data:      string(recipeJSON),
		SourceUrl: rec.SourceURL,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save recipe %q: %w", rec.Name, err)
	}
	return nil
}

// Get retrieves a recipe by name. It returns nil when the recipe is unknown.
func (r *Repository) Get(ctx context.Context, name string) (*Recipe, error) {
	row, err := r.queries.GetRecipeByKey(ctx, Key(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe %q: %w", name, err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	return &rec, nil
}

// List retrieves all stored recipes.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.queries.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		var rec Recipe
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			log.Printf("Warning: Failed to unmarshal recipe JSON for %s: %v", row.NameKey, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Count returns the number of stored recipes.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}

// LoadCatalog builds the lookup used by imports: the built-in table,
// optionally extended by a YAML file, overridden by stored recipes.
func LoadCatalog(ctx context.Context, repo *Repository, extraPath string) (*Catalog, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}

	if extraPath != "" {
		extra, err := LoadCatalogFile(extraPath)
		if err != nil {
			return nil, err
		}
		catalog.Add(extra...)
	}

	if repo != nil {
		stored, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		catalog.Add(stored...)
	}

	return catalog, nil
}
