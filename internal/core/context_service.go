package core

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"moussamarbre.com/site-api/internal/store"
)

const (
	MaxContextProducts = 20 // Published products included in the chat context
	MaxContextProjects = 10 // Published projects included in the chat context

	uncategorizedLabel = "Uncategorized"
)

const companyBackground = `Company Background (Moussa Marbre):
- Founded in: Taza, Morocco.
- Founder & General Director: M. Moussa.
- Achievements: 30+ types of stones, 80+ delivered projects, 50+ trained artisans.
- Mission: Transform spaces into timeless works of art using natural stone.
- Core Services: Wall and floor coverings, kitchen worktops, staircase and terrace cladding, outdoor landscaping.`

// ContextService renders the catalog snapshot that grounds the model's
// answers in real business data.
type ContextService struct {
	dbStore *store.SQLiteStore
	logger  *zap.Logger
}

func NewContextService(db *store.SQLiteStore, logger *zap.Logger) *ContextService {
	return &ContextService{dbStore: db, logger: logger}
}

// BuildContext fetches the published catalog and renders it into the text
// block injected into the system prompt. A failed read fails the whole
// request: silently answering from an empty catalog would mislead the model.
func (s *ContextService) BuildContext() (string, error) {
	products, err := s.dbStore.ListPublishedProducts(MaxContextProducts)
	if err != nil {
		return "", fmt.Errorf("failed to load products for chat context: %w", err)
	}

	projects, err := s.dbStore.ListPublishedProjects(MaxContextProjects)
	if err != nil {
		return "", fmt.Errorf("failed to load projects for chat context: %w", err)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(companyBackground)
	b.WriteString("\n\nProducts Available:\n")
	for _, p := range products {
		b.WriteString(fmt.Sprintf("- %s (Category: %s, Price: %s)\n", p.Name, categoryLabel(p.Category), priceLabel(p.RegularPrice)))
	}
	b.WriteString("\nRecent Projects:\n")
	for _, p := range projects {
		b.WriteString(fmt.Sprintf("- %s (%s): %s\n", p.Title, categoryLabel(p.Category), p.Description))
	}

	s.logger.Debug("chat context built",
		zap.Int("products", len(products)),
		zap.Int("projects", len(projects)))

	return b.String(), nil
}

func categoryLabel(c *store.Category) string {
	if c == nil || c.Name == "" {
		return uncategorizedLabel
	}
	return c.Name
}

func priceLabel(price *float64) string {
	if price == nil {
		return "Contact for price"
	}
	return strconv.FormatFloat(*price, 'f', -1, 64) + " MAD"
}
