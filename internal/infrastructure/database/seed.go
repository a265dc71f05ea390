package database

import (
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/utils"
	"gorm.io/gorm"
)

// SeedOptions controls first-run data.
type SeedOptions struct {
	AdminPIN       string
	SampleProducts bool
}

// SeedDefaultData fills empty tables with the defaults a new till needs.
// Tables that already have rows are left alone.
func SeedDefaultData(db *gorm.DB, opts SeedOptions) error {
	logger.Info().Msg("Seeding default data...")

	if err := seedIfEmpty(db, &entity.Settings{}, func() interface{} {
		return entity.DefaultSettings()
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &entity.Cashier{}, func() interface{} {
		pin := opts.AdminPIN
		if pin == "" {
			pin = "1234"
		}
		hash, err := utils.HashPIN(pin)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to hash admin PIN")
			return nil
		}
		return &entity.Cashier{Name: "Admin", PINHash: hash, Role: enum.RoleAdmin}
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &entity.Category{}, func() interface{} {
		return &[]entity.Category{
			{Name: "Dairy"}, {Name: "Bakery"}, {Name: "Grains"}, {Name: "Pantry"}, {Name: "Beverages"},
		}
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &entity.Supplier{}, func() interface{} {
		return &[]entity.Supplier{
			{Name: "Fresh Farms"}, {Name: "Daily Bakery"}, {Name: "Global Grains"}, {Name: "Oil Co"},
		}
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &entity.Unit{}, func() interface{} {
		return &[]entity.Unit{
			{Name: "piece", Symbol: "pc"},
			{Name: "kilogram", Symbol: "kg"},
			{Name: "gram", Symbol: "g"},
			{Name: "liter", Symbol: "L"},
			{Name: "milliliter", Symbol: "mL"},
		}
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(db, &entity.QuickQuantity{}, func() interface{} {
		return &[]entity.QuickQuantity{
			{Value: 0.1, Label: "0.1"},
			{Value: 0.25, Label: "0.25"},
			{Value: 0.5, Label: "0.5"},
			{Value: 0.75, Label: "0.75"},
		}
	}); err != nil {
		return err
	}

	if opts.SampleProducts {
		if err := seedIfEmpty(db, &entity.Product{}, func() interface{} {
			return sampleProducts(time.Now())
		}); err != nil {
			return err
		}
	}

	logger.Info().Msg("Default data seeding completed")
	return nil
}

func seedIfEmpty(db *gorm.DB, model interface{}, rows func() interface{}) error {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	data := rows()
	if data == nil {
		return nil
	}
	return db.Create(data).Error
}

func sampleProducts(now time.Time) *[]entity.Product {
	return &[]entity.Product{
		{Barcode: "1234567890", Name: "Milk 1L", Category: "Dairy", CostPrice: 1.5, SellingPrice: 2.5, Stock: 50, MinStock: 10, Unit: "piece", Supplier: "Fresh Farms", CreatedAt: now, UpdatedAt: now},
		{Barcode: "1234567891", Name: "Bread White", Category: "Bakery", CostPrice: 1.0, SellingPrice: 1.8, Stock: 30, MinStock: 5, Unit: "piece", Supplier: "Daily Bakery", CreatedAt: now, UpdatedAt: now},
		{Barcode: "1234567892", Name: "Eggs 12pk", Category: "Dairy", CostPrice: 2.5, SellingPrice: 4.0, Stock: 25, MinStock: 10, Unit: "piece", Supplier: "Fresh Farms", CreatedAt: now, UpdatedAt: now},
		{Barcode: "1234567893", Name: "Rice Basmati", Category: "Grains", CostPrice: 8.0, SellingPrice: 12.0, Stock: 100, MinStock: 15, Unit: "kg", Supplier: "Global Grains", CreatedAt: now, UpdatedAt: now},
		{Barcode: "1234567894", Name: "Cooking Oil 1L", Category: "Pantry", CostPrice: 3.5, SellingPrice: 5.5, Stock: 35, MinStock: 10, Unit: "piece", Supplier: "Oil Co", CreatedAt: now, UpdatedAt: now},
	}
}
