package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService   *service.BillService
	importService *service.BillImportService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, importService *service.BillImportService) *BillHandler {
	return &BillHandler{billService: billService, importService: importService}
}

// BillItemRequest represents a line item in the request. A zero quantity
// counts as omitted and derives a zero amount; negative values are rejected.
type BillItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" binding:"omitempty,gte=1"`
	Rate        float64 `json:"rate" binding:"omitempty,gte=0"`
}

// CreateBillRequest represents the create bill request body
type CreateBillRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail *string           `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone *string           `json:"customer_phone"`
	TaxPercentage *float64          `json:"tax_percentage" binding:"omitempty,gte=0,lte=100"`
	Notes         *string           `json:"notes"`
	DueDate       *string           `json:"due_date"`
	Items         []BillItemRequest `json:"items" binding:"dive"`
}

// UpdateBillRequest represents the update bill request body
type UpdateBillRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail *string           `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone *string           `json:"customer_phone"`
	TaxPercentage float64           `json:"tax_percentage" binding:"gte=0,lte=100"`
	Notes         *string           `json:"notes"`
	DueDate       string            `json:"due_date" binding:"required"`
	Items         []BillItemRequest `json:"items" binding:"dive"`
}

// UpdateBillStatusRequest represents the status change request body
type UpdateBillStatusRequest struct {
	Status enum.BillStatus `json:"status"`
}

// BulkDeleteBillsRequest represents the bulk delete request body
type BulkDeleteBillsRequest struct {
	IDs []string `json:"ids"`
}

// List handles listing bills
// @Summary List Bills
// @Description Get all bills with pagination and filtering. Statuses are display statuses, so sent bills past their due date come back overdue.
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	var status *enum.BillStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.BillStatus(parsed)
			status = &st
		}
	}

	result, err := h.billService.ListBills(c.Request.Context(), &service.ListBillsInput{
		UserID: *userID,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
		Status: status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Summary handles the dashboard totals
// @Summary Bill Summary
// @Description Get aggregated bill counts and amounts by status
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /bills/summary [get]
func (h *BillHandler) Summary(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.billService.GetBillSummary(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill summary retrieved successfully", summary)
}

// Get handles getting a single bill
// @Summary Get Bill
// @Description Get a bill by ID with its line items
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Create handles creating a bill
// @Summary Create Bill
// @Description Create a new draft bill. Tax rate and due date default from the owner's settings.
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateBillRequest true "Bill data"
// @Success 201 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := bindingFieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return
		}
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateBillInput{
		UserID:        *userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		TaxPercentage: req.TaxPercentage,
		Notes:         req.Notes,
		Items:         toItemInputs(req.Items),
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date format. Use YYYY-MM-DD")
			return
		}
		input.DueDate = &due
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Update handles updating a bill
// @Summary Update Bill
// @Description Replace the editable fields and line items of a bill
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body UpdateBillRequest true "Bill data"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := bindingFieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return
		}
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due date format. Use YYYY-MM-DD")
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), &service.UpdateBillInput{
		UserID:        *userID,
		ID:            id,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		TaxPercentage: req.TaxPercentage,
		Notes:         req.Notes,
		DueDate:       due,
		Items:         toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// Duplicate handles copying a bill into a new draft
// @Summary Duplicate Bill
// @Description Copy a bill into a fresh draft with a new bill number
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bill ID"
// @Success 201 {object} response.APIResponse
// @Router /bills/{id}/duplicate [post]
func (h *BillHandler) Duplicate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.DuplicateBill(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill duplicated successfully", bill)
}

// UpdateStatus handles moving a bill along its lifecycle
// @Summary Update Bill Status
// @Description Change a bill's status. Illegal transitions are rejected.
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body UpdateBillStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id}/status [put]
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if !req.Status.IsValid() {
		response.BadRequest(c, "Invalid status value")
		return
	}

	bill, err := h.billService.UpdateBillStatus(c.Request.Context(), *userID, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill status updated successfully", bill)
}

// Delete handles deleting a bill
// @Summary Delete Bill
// @Description Delete a bill and its line items
// @Tags bills
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 204
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// BulkDelete handles deleting several bills at once
// @Summary Bulk Delete Bills
// @Description Delete several bills in one request. Unknown ids are skipped.
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Param request body BulkDeleteBillsRequest true "Bill IDs"
// @Success 204
// @Router /bills/bulk-delete [post]
func (h *BillHandler) BulkDelete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req BulkDeleteBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid bill ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	if err := h.billService.BulkDeleteBills(c.Request.Context(), *userID, ids); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export handles downloading a bill as PDF or Excel
// @Summary Export Bill
// @Description Download a bill as a PDF or Excel file
// @Tags bills
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Bill ID"
// @Param format query string false "Export format: pdf or excel" default(pdf)
// @Success 200 {file} binary
// @Router /bills/{id}/export [get]
func (h *BillHandler) Export(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "pdf"))

	var data []byte
	var filename, contentType string
	switch format {
	case "pdf":
		data, filename, err = h.billService.ExportBillPDF(c.Request.Context(), *userID, id)
		contentType = "application/pdf"
	case "excel", "xlsx":
		data, filename, err = h.billService.ExportBillExcel(c.Request.Context(), *userID, id)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		response.BadRequest(c, "Unsupported export format: "+format)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// ShareWhatsApp handles building a WhatsApp share link
// @Summary Share Bill via WhatsApp
// @Description Get a wa.me link carrying the bill summary
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id}/share/whatsapp [get]
func (h *BillHandler) ShareWhatsApp(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	link, err := h.billService.ShareBillWhatsApp(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Share link generated successfully", gin.H{"url": link})
}

// Email handles sending a bill to the customer
// @Summary Email Bill
// @Description Send the bill to the customer's email with the PDF attached
// @Tags bills
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id}/email [post]
func (h *BillHandler) Email(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.EmailBill(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill emailed successfully", nil)
}

// Import handles importing bills from an uploaded file
// @Summary Import Bills
// @Description Import draft bills from an Excel (.xlsx) or JSON upload
// @Tags bills
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Import file"
// @Success 200 {object} response.APIResponse
// @Router /bills/import [post]
func (h *BillHandler) Import(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	var rows []service.ImportBillRow
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		rows, err = h.importService.ParseExcel(file)
	case ".json":
		rows, err = h.importService.ParseJSON(file)
	default:
		response.BadRequest(c, "Unsupported file type. Upload .xlsx or .json")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.importService.ImportBills(c.Request.Context(), *userID, rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}

func toItemInputs(items []BillItemRequest) []service.BillItemInput {
	out := make([]service.BillItemInput, len(items))
	for i, item := range items {
		out[i] = service.BillItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		}
	}
	return out
}
