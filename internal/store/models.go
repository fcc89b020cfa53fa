package store

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	RegularPrice *float64  `json:"regularPrice"` // Nullable, in MAD
	Images       string    `json:"images"`
	Type         string    `json:"type"`
	Published    bool      `json:"published"`
	Visibility   string    `json:"visibility"`
	InStock      bool      `json:"inStock"`
	CategoryID   *int64    `json:"categoryId"`
	Category     *Category `json:"category"` // Resolved on reads, nil when unlinked
}

type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Images      string    `json:"images"`
	Published   bool      `json:"published"`
	CategoryID  *int64    `json:"categoryId"`
	Category    *Category `json:"category"`
}
