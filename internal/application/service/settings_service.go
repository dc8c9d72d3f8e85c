package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves user settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create default settings
	if settings == nil {
		settings = &entity.UserSettings{
			UserID:             userID,
			CurrencySymbol:     "$",
			DefaultTaxRate:     0,
			BillNumberPrefix:   "BILL-",
			DueDays:            30,
			DateFormat:         "DD/MM/YYYY",
			EmailNotifications: true,
			OverdueAlerts:      true,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	UserID             uuid.UUID
	CompanyName        string
	CompanyAddress     *string
	CompanyPhone       *string
	CurrencySymbol     string
	DefaultTaxRate     float64
	BillNumberPrefix   string
	DueDays            int
	DateFormat         string
	EmailNotifications bool
	OverdueAlerts      bool
}

// UpdateSettings updates user settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create new
	if settings == nil {
		settings = &entity.UserSettings{
			UserID: input.UserID,
		}
	}

	// Update fields
	settings.CompanyName = input.CompanyName
	settings.CompanyAddress = input.CompanyAddress
	settings.CompanyPhone = input.CompanyPhone
	settings.CurrencySymbol = input.CurrencySymbol
	settings.DefaultTaxRate = input.DefaultTaxRate
	settings.BillNumberPrefix = input.BillNumberPrefix
	settings.DueDays = input.DueDays
	settings.DateFormat = input.DateFormat
	settings.EmailNotifications = input.EmailNotifications
	settings.OverdueAlerts = input.OverdueAlerts

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
