package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/dto"
	"github.com/buildvance/estimator-backend/internal/services"
	"github.com/buildvance/estimator-backend/internal/types"
)

type WorkItemHandler struct {
	workItemService services.WorkItemService
}

func NewWorkItemHandler(workItemService services.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{workItemService: workItemService}
}

type createWorkItemRequest struct {
	UserID           string `json:"user_id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Optional         bool   `json:"optional"`
	Domain           string `json:"domain"`
	DefaultGroupName string `json:"default_group_name"`
}

func (wh *WorkItemHandler) Create(c *gin.Context) {
	var req createWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	userID, err := dto.ParseUUID("user id", req.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	item, err := wh.workItemService.Create(c.Request.Context(), services.CreateWorkItemInput{
		UserID:           userID,
		Code:             req.Code,
		Name:             req.Name,
		Description:      req.Description,
		Optional:         req.Optional,
		Domain:           req.Domain,
		DefaultGroupName: req.DefaultGroupName,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.WorkItemToDto(item))
}

type updateWorkItemRequest struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Optional         bool   `json:"optional"`
	Domain           string `json:"domain"`
	DefaultGroupName string `json:"default_group_name"`
}

func (wh *WorkItemHandler) Update(c *gin.Context) {
	id, err := dto.ParseUUID("work item id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	existing, err := wh.workItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	existing.Code = req.Code
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Optional = req.Optional
	existing.Domain = types.ParseDomain(req.Domain)
	existing.DefaultGroupName = req.DefaultGroupName
	updated, err := wh.workItemService.Update(c.Request.Context(), existing)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.WorkItemToDto(updated))
}

func (wh *WorkItemHandler) Delete(c *gin.Context) {
	id, err := dto.ParseUUID("work item id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := wh.workItemService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

func (wh *WorkItemHandler) GetByID(c *gin.Context) {
	id, err := dto.ParseUUID("work item id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	item, err := wh.workItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.WorkItemToDto(item))
}

// ListByUser handles /users/:id/work-items with optional ?domain= and
// ?code= filters.
func (wh *WorkItemHandler) ListByUser(c *gin.Context) {
	userID, err := dto.ParseUUID("user id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if code := c.Query("code"); code != "" || c.Request.URL.Query().Has("code") {
		item, err := wh.workItemService.GetByUserAndCode(c.Request.Context(), userID, code)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, []dto.WorkItemDto{dto.WorkItemToDto(item)})
		return
	}
	var items []*types.WorkItem
	if domain := c.Query("domain"); domain != "" {
		items, err = wh.workItemService.ListByUserAndDomain(c.Request.Context(), userID, domain)
	} else {
		items, err = wh.workItemService.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, toWorkItemDtos(items))
}

func (wh *WorkItemHandler) ListByDomain(c *gin.Context) {
	items, err := wh.workItemService.ListByDomain(c.Request.Context(), c.Query("domain"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, toWorkItemDtos(items))
}

func toWorkItemDtos(items []*types.WorkItem) []dto.WorkItemDto {
	out := make([]dto.WorkItemDto, 0, len(items))
	for _, item := range items {
		out = append(out, dto.WorkItemToDto(item))
	}
	return out
}
