package main

import (
	"log"

	"go-product-catalog/internal/model"
	"go-product-catalog/pkg/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Seeds a handful of demo categories and products. Derived totals are
// filled in by the save hooks, so none are written here.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Category{}, &model.Product{}, &model.AuditLog{})

	// 3. Categories
	categories := []model.Category{
		{Name: "Hardware", Description: "Physical goods"},
		{Name: "Licenses", Description: "Digital licenses and subscriptions"},
	}
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).FirstOrCreate(&categories[i]).Error; err != nil {
			log.Fatalf("Failed to seed category %q: %v", categories[i].Name, err)
		}
	}

	// 4. Products
	hardwareID := categories[0].ID
	licensesID := categories[1].ID
	products := []model.Product{
		{
			Name:       "Widget",
			UnitPrice:  decimal.NewFromFloat(10.0),
			Quantity:   1,
			TaxRate:    decimal.NewFromInt(21),
			IsActive:   true,
			Kind:       model.KindPhysical,
			CategoryID: &hardwareID,
		},
		{
			Name:       "Mounting Kit",
			UnitPrice:  decimal.NewFromFloat(4.75),
			Quantity:   12,
			TaxRate:    decimal.NewFromInt(21),
			IsActive:   true,
			Kind:       model.KindPhysical,
			CategoryID: &hardwareID,
		},
		{
			Name:       "Office Suite License",
			UnitPrice:  decimal.NewFromFloat(89.99),
			Quantity:   5,
			TaxRate:    decimal.NewFromInt(21),
			IsActive:   false,
			Kind:       model.KindDigital,
			CategoryID: &licensesID,
		},
	}
	for i := range products {
		if err := db.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error; err != nil {
			log.Fatalf("Failed to seed product %q: %v", products[i].Name, err)
		}
	}

	log.Printf("Seeded %d categories and %d products", len(categories), len(products))
}
