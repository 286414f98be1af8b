package domain

type (
	Product struct {
		ProductID         string
		Name              string
		Description       string
		Price             float64
		CategoryID        string
		CategoryName      string
		Image             string
		Unit              string
		InStock           bool
		AvailableQuantity int
	}

	Category struct {
		CategoryID  string
		Name        string
		Slug        string
		Description string
		Image       string
	}
)

// ProductFilter narrows a catalog listing. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID string
	Search     string
	MinPrice   float64
	MaxPrice   float64
	HasMin     bool
	HasMax     bool
}
