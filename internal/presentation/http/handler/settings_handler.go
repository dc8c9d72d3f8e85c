package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves user settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates user settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CompanyName        string  `json:"company_name"`
		CompanyAddress     *string `json:"company_address"`
		CompanyPhone       *string `json:"company_phone"`
		CurrencySymbol     string  `json:"currency_symbol"`
		DefaultTaxRate     float64 `json:"default_tax_rate"`
		BillNumberPrefix   string  `json:"bill_number_prefix"`
		DueDays            int     `json:"due_days"`
		DateFormat         string  `json:"date_format"`
		EmailNotifications bool    `json:"email_notifications"`
		OverdueAlerts      bool    `json:"overdue_alerts"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.DueDays < 0 {
		response.BadRequest(c, "Due days cannot be negative")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		UserID:             *userID,
		CompanyName:        req.CompanyName,
		CompanyAddress:     req.CompanyAddress,
		CompanyPhone:       req.CompanyPhone,
		CurrencySymbol:     req.CurrencySymbol,
		DefaultTaxRate:     req.DefaultTaxRate,
		BillNumberPrefix:   req.BillNumberPrefix,
		DueDays:            req.DueDays,
		DateFormat:         req.DateFormat,
		EmailNotifications: req.EmailNotifications,
		OverdueAlerts:      req.OverdueAlerts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
