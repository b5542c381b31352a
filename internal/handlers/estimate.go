package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/dto"
	"github.com/buildvance/estimator-backend/internal/services"
)

type EstimateHandler struct {
	estimateService services.EstimateService
}

func NewEstimateHandler(estimateService services.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

type createEstimateRequest struct {
	ProjectID         string  `json:"project_id"`
	OverallMultiplier float64 `json:"overall_multiplier"`
}

func (eh *EstimateHandler) Create(c *gin.Context) {
	var req createEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	projectID, err := dto.ParseUUID("project id", req.ProjectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	estimate, err := eh.estimateService.CreateEstimate(c.Request.Context(), projectID, req.OverallMultiplier)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.EstimateToDto(estimate))
}

func (eh *EstimateHandler) Get(c *gin.Context) {
	id, err := dto.ParseUUID("estimate id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	estimate, err := eh.estimateService.GetEstimate(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.EstimateToDto(estimate))
}

func (eh *EstimateHandler) ListByProject(c *gin.Context) {
	projectID, err := dto.ParseUUID("project id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	estimates, err := eh.estimateService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	out := make([]dto.EstimateDto, 0, len(estimates))
	for _, e := range estimates {
		out = append(out, dto.EstimateToDto(e))
	}
	RespondOK(c, out)
}

type updateMultiplierRequest struct {
	OverallMultiplier float64 `json:"overall_multiplier"`
}

func (eh *EstimateHandler) UpdateOverallMultiplier(c *gin.Context) {
	id, err := dto.ParseUUID("estimate id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateMultiplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	estimate, err := eh.estimateService.UpdateOverallMultiplier(c.Request.Context(), id, req.OverallMultiplier)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.EstimateToDto(estimate))
}

func (eh *EstimateHandler) Delete(c *gin.Context) {
	id, err := dto.ParseUUID("estimate id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := eh.estimateService.DeleteEstimate(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

type addGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (eh *EstimateHandler) AddGroup(c *gin.Context) {
	estimateID, err := dto.ParseUUID("estimate id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req addGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	group, err := eh.estimateService.AddGroup(c.Request.Context(), estimateID, req.Name, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.EstimateGroupToDto(group))
}

func (eh *EstimateHandler) RemoveGroup(c *gin.Context) {
	groupID, err := dto.ParseUUID("estimate group id", c.Param("groupId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := eh.estimateService.RemoveGroup(c.Request.Context(), groupID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": groupID})
}

type addLineRequest struct {
	WorkItemID string  `json:"work_item_id"`
	Quantity   float64 `json:"quantity"`
	Multiplier float64 `json:"multiplier"`
	Strategy   string  `json:"strategy"`
}

func (eh *EstimateHandler) AddLine(c *gin.Context) {
	groupID, err := dto.ParseUUID("estimate group id", c.Param("groupId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	workItemID, err := dto.ParseUUID("work item id", req.WorkItemID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	line, err := eh.estimateService.AddLine(c.Request.Context(), services.AddLineInput{
		GroupID:    groupID,
		WorkItemID: workItemID,
		Quantity:   req.Quantity,
		Multiplier: req.Multiplier,
		Strategy:   req.Strategy,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.EstimateLineToDto(line))
}

type updateLineRequest struct {
	Quantity   float64 `json:"quantity"`
	Multiplier float64 `json:"multiplier"`
	Strategy   string  `json:"strategy"`
}

func (eh *EstimateHandler) UpdateLine(c *gin.Context) {
	lineID, err := dto.ParseUUID("estimate line id", c.Param("lineId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	line, err := eh.estimateService.UpdateLine(c.Request.Context(), services.UpdateLineInput{
		LineID:     lineID,
		Quantity:   req.Quantity,
		Multiplier: req.Multiplier,
		Strategy:   req.Strategy,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.EstimateLineToDto(line))
}

func (eh *EstimateHandler) RemoveLine(c *gin.Context) {
	lineID, err := dto.ParseUUID("estimate line id", c.Param("lineId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := eh.estimateService.RemoveLine(c.Request.Context(), lineID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": lineID})
}
