// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

var knownPlans = map[string]bool{"silver": true, "gold": true, "platinum": true}

func LoadCatalog(path string) (*ProductCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat ProductCatalog
	err = json.Unmarshal(data, &cat)
	return &cat, err
}

func SaveCatalog(path string, cat *ProductCatalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the catalog for duplicate ids and unknown plan tiers.
func (c *ProductCatalog) Validate() error {
	seen := map[string]bool{}
	for _, p := range c.Products {
		if p.ID == "" {
			return fmt.Errorf("product with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true

		if len(p.Plans) == 0 {
			return fmt.Errorf("product %q has no plans", p.ID)
		}
		for _, plan := range p.Plans {
			if !knownPlans[plan] {
				return fmt.Errorf("product %q references unknown plan %q", p.ID, plan)
			}
		}
	}
	return nil
}

// Find returns the product with the given id, or nil.
func (c *ProductCatalog) Find(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}
