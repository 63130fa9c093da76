// cmd/tools/catalog-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"insurance-api/pkg/catalog"
)

var catalogPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Product ID (e.g., health-shield)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Health Shield)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., health)")
	plans := addCmd.String("plans", "silver,gold,platinum", "Comma-separated plan tiers")
	term := addCmd.String("term", "1 year", "Policy term")
	addCmd.StringVar(&catalogPath, "path", "configs/product-catalog.json", "Path to catalog file")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Product ID to update")
	field := updateCmd.String("field", "", "Field to update (active, term, displayName)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&catalogPath, "path", "configs/product-catalog.json", "Path to catalog file")

	validateCmd.StringVar(&catalogPath, "path", "configs/product-catalog.json", "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *category == "" {
			fmt.Println("Error: id, displayName and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		product := catalog.Product{
			ID:          *idAdd,
			DisplayName: *displayName,
			Description: *description,
			Category:    *category,
			Plans:       strings.Split(*plans, ","),
			SumsInsured: []int{500000, 1000000, 2000000, 5000000},
			Term:        *term,
			Active:      true,
		}
		if err := addProduct(product); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Product %q added.\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" {
			fmt.Println("Error: id and field are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateProduct(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Product %q updated.\n", *idUpdate)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		cat, err := catalog.LoadCatalog(catalogPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := cat.Validate(); err != nil {
			fmt.Printf("Catalog invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog valid: %d products.\n", len(cat.Products))

	default:
		help()
		os.Exit(1)
	}
}

func addProduct(product catalog.Product) error {
	cat, err := catalog.LoadCatalog(catalogPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		cat = &catalog.ProductCatalog{Version: "1.0.0"}
	}

	if cat.Find(product.ID) != nil {
		return fmt.Errorf("product %q already exists", product.ID)
	}
	cat.Products = append(cat.Products, product)
	cat.LastUpdated = time.Now().Format(time.RFC3339)

	if err := cat.Validate(); err != nil {
		return err
	}
	return catalog.SaveCatalog(catalogPath, cat)
}

func updateProduct(id, field, value string) error {
	cat, err := catalog.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	product := cat.Find(id)
	if product == nil {
		return fmt.Errorf("product %q not found", id)
	}

	switch field {
	case "active":
		product.Active = value == "true"
	case "term":
		product.Term = value
	case "displayName":
		product.DisplayName = value
	case "description":
		product.Description = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	cat.LastUpdated = time.Now().Format(time.RFC3339)

	return catalog.SaveCatalog(catalogPath, cat)
}

func help() {
	fmt.Println(`Usage: catalog-updater <command> [flags]

Commands:
  add       Add a product to the catalog
  update    Update a product field
  validate  Validate the catalog file`)
}
