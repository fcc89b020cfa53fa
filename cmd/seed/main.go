// Seed imports catalog data into the SQLite store consumed by the API
// server: products from a WordPress/WooCommerce CSV export, projects from a
// JSON file. It rebuilds the affected tables from scratch and exits.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"moussamarbre.com/site-api/internal/store"
)

type projectSeed struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	CategoryName string `json:"categoryName"`
}

func main() {
	csvPath := flag.String("csv", "", "WordPress product export CSV to import")
	projectsPath := flag.String("projects", "", "projects JSON file to import")
	dbPath := flag.String("db", "moussamarbre.db", "SQLite database path")
	flag.Parse()

	if *csvPath == "" && *projectsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -csv products.csv [-projects projects.json] [-db moussamarbre.db]")
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbStore, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer dbStore.Close()

	if *csvPath != "" {
		count, err := importProducts(dbStore, *csvPath, logger)
		if err != nil {
			logger.Fatal("Product import failed", zap.Error(err))
		}
		logger.Info("Products imported", zap.Int("count", count))
	}

	if *projectsPath != "" {
		count, err := importProjects(dbStore, *projectsPath, logger)
		if err != nil {
			logger.Fatal("Project import failed", zap.Error(err))
		}
		logger.Info("Projects imported", zap.Int("count", count))
	}
}

// importProducts replaces the product catalog with the rows of a WordPress
// export. Column semantics follow the WooCommerce CSV format: "Published"
// and "In stock?" are "1"/"0" flags, "Regular price" may be empty.
func importProducts(dbStore *store.SQLiteStore, path string, logger *zap.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Exports vary in trailing columns

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Name", "Published"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	logger.Info("Parsed product CSV", zap.Int("rows", len(records)))

	if err := dbStore.ClearCatalog(); err != nil {
		return 0, err
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	count := 0
	for _, record := range records {
		product := store.Product{
			Name:       field(record, "Name"),
			Type:       field(record, "Type"),
			Published:  field(record, "Published") == "1",
			Visibility: field(record, "Visibility in catalog"),
			InStock:    field(record, "In stock?") == "1",
		}

		if raw := field(record, "Regular price"); raw != "" {
			if price, err := strconv.ParseFloat(raw, 64); err == nil {
				product.RegularPrice = &price
			}
		}

		// Relative image paths are served by the static image route.
		image := field(record, "Images")
		if strings.HasPrefix(image, "./") {
			image = "/api/images/" + image[2:]
		}
		product.Images = image

		if name := field(record, "Categories"); name != "" {
			category, err := dbStore.UpsertCategory(name)
			if err != nil {
				return count, err
			}
			product.CategoryID = &category.ID
		}

		if err := dbStore.CreateProduct(&product); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importProjects(dbStore *store.SQLiteStore, path string, logger *zap.Logger) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read projects file %s: %w", path, err)
	}

	var seeds []projectSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("failed to parse projects file: %w", err)
	}
	logger.Info("Parsed projects file", zap.Int("projects", len(seeds)))

	if err := dbStore.ClearProjects(); err != nil {
		return 0, err
	}

	count := 0
	for _, seed := range seeds {
		project := store.Project{
			Title:       seed.Title,
			Subtitle:    seed.Subtitle,
			Description: seed.Description,
			Images:      seed.Image,
			Published:   true,
		}

		if seed.CategoryName != "" {
			category, err := dbStore.UpsertProjectCategory(seed.CategoryName)
			if err != nil {
				return count, err
			}
			project.CategoryID = &category.ID
		}

		if err := dbStore.CreateProject(&project); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
