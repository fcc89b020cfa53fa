package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"moussamarbre.com/site-api/internal/slug"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS categories (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT UNIQUE NOT NULL
    );

    CREATE TABLE IF NOT EXISTS products (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        regular_price REAL,
        images TEXT NOT NULL DEFAULT '',
        type TEXT NOT NULL DEFAULT '',
        published BOOLEAN NOT NULL DEFAULT FALSE,
        visibility TEXT NOT NULL DEFAULT '',
        in_stock BOOLEAN NOT NULL DEFAULT FALSE,
        category_id INTEGER,
        FOREIGN KEY (category_id) REFERENCES categories (id)
    );

    CREATE TABLE IF NOT EXISTS project_categories (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT UNIQUE NOT NULL
    );

    CREATE TABLE IF NOT EXISTS projects (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        title TEXT NOT NULL,
        subtitle TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        images TEXT NOT NULL DEFAULT '',
        published BOOLEAN NOT NULL DEFAULT FALSE,
        category_id INTEGER,
        FOREIGN KEY (category_id) REFERENCES project_categories (id)
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Category methods. Product and project categories live in separate tables:
// the product import rebuilds its table from scratch, which must not disturb
// categories referenced by projects.

func (s *SQLiteStore) upsertCategoryIn(table, name string) (*Category, error) {
	var cat Category
	err := s.db.QueryRow("SELECT id, name FROM "+table+" WHERE name = ?", name).Scan(&cat.ID, &cat.Name)
	if err == nil {
		return &cat, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO "+table+" (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Category{ID: id, Name: name}, nil
}

// UpsertCategory returns the existing product category with the given name,
// creating it if needed.
func (s *SQLiteStore) UpsertCategory(name string) (*Category, error) {
	return s.upsertCategoryIn("categories", name)
}

// UpsertProjectCategory is the project-side counterpart of UpsertCategory.
func (s *SQLiteStore) UpsertProjectCategory(name string) (*Category, error) {
	return s.upsertCategoryIn("project_categories", name)
}

// Product methods

const productColumns = `p.id, p.name, p.regular_price, p.images, p.type, p.published, p.visibility, p.in_stock, p.category_id, c.id, c.name`

const productSelect = `SELECT ` + productColumns + `
    FROM products p LEFT JOIN categories c ON p.category_id = c.id`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var price sql.NullFloat64
	var categoryID, catID sql.NullInt64
	var catName sql.NullString

	err := row.Scan(&p.ID, &p.Name, &price, &p.Images, &p.Type, &p.Published, &p.Visibility, &p.InStock, &categoryID, &catID, &catName)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		p.RegularPrice = &price.Float64
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	if catID.Valid && catName.Valid {
		p.Category = &Category{ID: catID.Int64, Name: catName.String}
	}
	return &p, nil
}

func (s *SQLiteStore) CreateProduct(p *Product) error {
	stmt, err := s.db.Prepare("INSERT INTO products (name, regular_price, images, type, published, visibility, in_stock, category_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare product insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(p.Name, p.RegularPrice, p.Images, p.Type, p.Published, p.Visibility, p.InStock, p.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to execute product insert: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

// ListPublishedProducts returns published products with their category
// resolved, capped at limit when limit > 0. No ordering contract: callers
// render the snapshot as-is.
func (s *SQLiteStore) ListPublishedProducts(limit int) ([]Product, error) {
	query := productSelect + " WHERE p.published = TRUE"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProductBySlug resolves a product by the storefront slug of its name, or
// by its lowercased name. Matching spans unpublished products too, same as
// the detail page. Returns nil, nil when nothing matches.
func (s *SQLiteStore) GetProductBySlug(requested string) (*Product, error) {
	requested = strings.ToLower(requested)

	rows, err := s.db.Query(productSelect)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		if slug.Slugify(p.Name) == requested || strings.ToLower(p.Name) == requested {
			return p, nil
		}
	}
	return nil, rows.Err()
}

// Project methods

const projectSelect = `SELECT pr.id, pr.title, pr.subtitle, pr.description, pr.images, pr.published, pr.category_id, c.id, c.name
    FROM projects pr LEFT JOIN project_categories c ON pr.category_id = c.id`

func (s *SQLiteStore) CreateProject(p *Project) error {
	stmt, err := s.db.Prepare("INSERT INTO projects (title, subtitle, description, images, published, category_id) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare project insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(p.Title, p.Subtitle, p.Description, p.Images, p.Published, p.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to execute project insert: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

// ListPublishedProjects returns published projects with their category
// resolved, capped at limit when limit > 0.
func (s *SQLiteStore) ListPublishedProjects(limit int) ([]Project, error) {
	query := projectSelect + " WHERE pr.published = TRUE ORDER BY pr.id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var categoryID, catID sql.NullInt64
		var catName sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Description, &p.Images, &p.Published, &categoryID, &catID, &catName); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		if categoryID.Valid {
			p.CategoryID = &categoryID.Int64
		}
		if catID.Valid && catName.Valid {
			p.Category = &Category{ID: catID.Int64, Name: catName.String}
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Import methods, used only by the seed binary. The serving pipeline never
// writes.

// ClearCatalog wipes products and product categories ahead of a fresh CSV
// import. Project categories have their own table and are untouched, so a
// product re-import cannot re-label existing projects.
func (s *SQLiteStore) ClearCatalog() error {
	for _, table := range []string{"products", "categories"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		if _, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table); err != nil && !strings.Contains(err.Error(), "no such table") {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}

// ClearProjects wipes projects and project categories ahead of a fresh
// project import.
func (s *SQLiteStore) ClearProjects() error {
	for _, table := range []string{"projects", "project_categories"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		if _, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table); err != nil && !strings.Contains(err.Error(), "no such table") {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
