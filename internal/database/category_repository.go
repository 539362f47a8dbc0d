package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/vocabkeep/pkg/models"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new repository instance
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll returns all categories alphabetically
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %v", err)
	}
	return categories, nil
}

// GetByName returns a category by name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.GetContext(ctx, &category,
		r.db.Rebind("SELECT * FROM categories WHERE name = ?"), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %v", err)
	}
	return &category, nil
}

// GetOrCreate returns the category with the given name, creating it if
// necessary
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*models.Category, error) {
	category, err := r.GetByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind("INSERT INTO categories (name) VALUES (?) RETURNING id, created_at, updated_at")
		category = &models.Category{Name: name}
		if err := r.db.QueryRowxContext(ctx, query, name).Scan(
			&category.ID, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to create category: %v", err)
		}
		return category, nil
	}

	result, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %v", err)
	}

	var created models.Category
	if err := r.db.GetContext(ctx, &created,
		"SELECT * FROM categories WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to read created category: %v", err)
	}
	return &created, nil
}

// RefreshCount recomputes a category's cached word count from the words
// table. Callers treat failures as best-effort bookkeeping.
func (r *CategoryRepository) RefreshCount(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE categories SET
			word_count = (SELECT COUNT(*) FROM words WHERE words.category = categories.name),
			updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`), name)
	if err != nil {
		return fmt.Errorf("failed to refresh category count: %v", err)
	}
	return nil
}
