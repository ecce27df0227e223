package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

// Generates a sample product catalogue at data/catalog.json for local
// development. The server loads this file when CATALOG_S3_ENABLED is false.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []product{
		{ID: "course-foundation", Name: "Foundation Course", Price: 350.00, Category: "courses", Description: "Entry-level training course"},
		{ID: "course-advanced", Name: "Advanced Course", Price: 550.00, Category: "courses", Description: "Advanced training course"},
		{ID: "workshop-one-day", Name: "One Day Workshop", Price: 220.00, Category: "workshops", Description: "Single day on-site workshop"},
		{ID: "assessment-site", Name: "Site Assessment", Price: 180.00, Category: "assessments"},
		{ID: "cert-renewal", Name: "Certification Renewal", Price: 95.00, Category: "certifications"},
	}

	path := filepath.Join(dataDir, "catalog.json")
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		log.Fatalf("Failed to write catalogue: %v", err)
	}

	fmt.Printf("Wrote %d products to %s\n", len(products), path)
}
