package service

import (
	"context"
	"strings"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

// SettingsService handles the store settings singleton
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// Get returns the settings row, creating the defaults on a fresh store.
func (s *SettingsService) Get(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	if settings == nil {
		settings = entity.DefaultSettings()
		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			return nil, apperror.Persistence(err)
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	StoreName      *string
	StoreAddress   *string
	StorePhone     *string
	TaxID          *string
	TaxRate        *float64
	Currency       *string
	ReceiptHeader  *string
	ReceiptFooter  *string
	ExportFileName *string
}

// Update applies input to the settings row
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError

	if input.StoreName != nil {
		if strings.TrimSpace(*input.StoreName) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "store_name", Message: "Store name is required"})
		}
		settings.StoreName = strings.TrimSpace(*input.StoreName)
	}
	if input.TaxRate != nil {
		if *input.TaxRate < 0 || *input.TaxRate > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax_rate", Message: "Tax rate must be between 0 and 100"})
		}
		settings.TaxRate = *input.TaxRate
	}
	if input.Currency != nil {
		if strings.TrimSpace(*input.Currency) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "currency", Message: "Currency is required"})
		}
		settings.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.StoreAddress != nil {
		settings.StoreAddress = *input.StoreAddress
	}
	if input.StorePhone != nil {
		settings.StorePhone = *input.StorePhone
	}
	if input.TaxID != nil {
		settings.TaxID = *input.TaxID
	}
	if input.ReceiptHeader != nil {
		settings.ReceiptHeader = *input.ReceiptHeader
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.ExportFileName != nil {
		settings.ExportFileName = strings.TrimSpace(*input.ExportFileName)
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, apperror.Persistence(err)
	}

	return settings, nil
}

// QuickQuantities returns the preset quantity buttons, smallest first.
func (s *SettingsService) QuickQuantities(ctx context.Context) ([]entity.QuickQuantity, error) {
	quick, err := s.settingsRepo.ListQuickQuantities(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return quick, nil
}
