package services

// DescriptionService synthesizes human-readable item text for a category
type DescriptionService interface {
	// Description fills a random template of the category
	Description(category string) (string, error)

	// ItemDescription returns a description together with an independently drawn brand and model number
	ItemDescription(category string) (*ItemDescription, error)

	// HasCategory reports whether templates and word lists exist for the category
	HasCategory(category string) bool
}

// ItemDescription is the descriptive part of a line item
type ItemDescription struct {
	Description string `json:"description"` // Filled template text
	Brand       string `json:"brand"`       // Brand drawn from the category's brand list
	Model       string `json:"model"`       // <prefix><number><suffix>
}
