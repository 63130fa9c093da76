// pkg/catalog/schema.go
package catalog

// ProductCatalog is the published set of insurance products and plan tiers
// the storefront offers.
type ProductCatalog struct {
	Version     string    `json:"version"`
	LastUpdated string    `json:"lastUpdated"`
	Products    []Product `json:"products"`
}

type Product struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Plans       []string `json:"plans"`
	SumsInsured []int    `json:"sumsInsured"`
	Riders      []string `json:"riders"`
	Term        string   `json:"term"`
	Active      bool     `json:"active"`
	Tags        []string `json:"tags"`
}
