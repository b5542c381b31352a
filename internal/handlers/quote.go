package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/dto"
	"github.com/buildvance/estimator-backend/internal/services"
)

type QuoteHandler struct {
	quoteService services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

type createQuoteRequest struct {
	WorkItemID  string         `json:"work_item_id"`
	CreatedByID string         `json:"created_by_id"`
	SupplierID  string         `json:"supplier_id"`
	Unit        string         `json:"unit"`
	UnitPrice   string         `json:"unit_price"`
	Currency    string         `json:"currency"`
	Domain      string         `json:"domain"`
	Location    dto.AddressDto `json:"location"`
}

func (qh *QuoteHandler) Create(c *gin.Context) {
	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	workItemID, err := dto.ParseUUID("work item id", req.WorkItemID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	createdByID, err := dto.ParseUUID("creator id", req.CreatedByID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	supplierID, err := dto.ParseUUID("supplier id", req.SupplierID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	unitPrice, err := dto.ParseDecimal("unit price", req.UnitPrice)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	quote, err := qh.quoteService.Create(c.Request.Context(), services.CreateQuoteInput{
		WorkItemID:  workItemID,
		CreatedByID: createdByID,
		SupplierID:  supplierID,
		Unit:        req.Unit,
		UnitPrice:   unitPrice,
		Currency:    req.Currency,
		Domain:      req.Domain,
		Location:    dto.AddressFromDto(req.Location),
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.QuoteToDto(quote))
}

type updateQuoteRequest struct {
	Unit      string `json:"unit"`
	UnitPrice string `json:"unit_price"`
	Currency  string `json:"currency"`
	Domain    string `json:"domain"`
	Valid     *bool  `json:"valid"`
}

func (qh *QuoteHandler) Update(c *gin.Context) {
	id, err := dto.ParseUUID("quote id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	existing, err := qh.quoteService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := dto.ApplyQuoteUpdate(existing, req.Unit, req.UnitPrice, req.Currency, req.Domain, req.Valid); err != nil {
		RespondServiceError(c, err)
		return
	}
	updated, err := qh.quoteService.Update(c.Request.Context(), existing)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.QuoteToDto(updated))
}

func (qh *QuoteHandler) Delete(c *gin.Context) {
	id, err := dto.ParseUUID("quote id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := qh.quoteService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

func (qh *QuoteHandler) GetByID(c *gin.Context) {
	id, err := dto.ParseUUID("quote id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	quote, err := qh.quoteService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.QuoteToDto(quote))
}

// ListByUser handles /users/:id/quotes with ?role=creator|supplier and
// ?page= / ?page_size= .
func (qh *QuoteHandler) ListByUser(c *gin.Context) {
	userID, err := dto.ParseUUID("user id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var result *services.QuotePage
	if c.Query("role") == "supplier" {
		result, err = qh.quoteService.GetQuotesBySupplier(c.Request.Context(), userID, page, pageSize)
	} else {
		result, err = qh.quoteService.GetQuotesByCreator(c.Request.Context(), userID, page, pageSize)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	items := make([]dto.QuoteDto, 0, len(result.Items))
	for _, q := range result.Items {
		items = append(items, dto.QuoteToDto(q))
	}
	RespondOK(c, dto.QuotePageDto{
		Items:      items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalCount: result.TotalCount,
		HasNext:    result.HasNext,
	})
}
