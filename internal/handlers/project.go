package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/dto"
	"github.com/buildvance/estimator-backend/internal/services"
	"github.com/buildvance/estimator-backend/internal/types"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	BuilderID string         `json:"builder_id"`
	OwnerID   string         `json:"owner_id"`
	Location  dto.AddressDto `json:"location"`
}

func (ph *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	builderID, err := dto.ParseUUID("builder id", req.BuilderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	ownerID, err := dto.ParseUUID("owner id", req.OwnerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	project, err := ph.projectService.Create(c.Request.Context(), builderID, ownerID, dto.AddressFromDto(req.Location))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.ProjectToDto(project))
}

func (ph *ProjectHandler) Update(c *gin.Context) {
	id, err := dto.ParseUUID("project id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	existing, err := ph.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	existing.Location = dto.AddressFromDto(req.Location)
	updated, err := ph.projectService.Update(c.Request.Context(), existing)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.ProjectToDto(updated))
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
	id, err := dto.ParseUUID("project id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := ph.projectService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

func (ph *ProjectHandler) GetByID(c *gin.Context) {
	id, err := dto.ParseUUID("project id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	project, err := ph.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.ProjectToDto(project))
}

// ListByUser handles /users/:id/projects with ?role=builder|owner.
func (ph *ProjectHandler) ListByUser(c *gin.Context) {
	userID, err := dto.ParseUUID("user id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	var projects []*types.Project
	if c.Query("role") == "owner" {
		projects, err = ph.projectService.ListByOwner(c.Request.Context(), userID)
	} else {
		projects, err = ph.projectService.ListByBuilder(c.Request.Context(), userID)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	out := make([]dto.ProjectDto, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ProjectToDto(p))
	}
	RespondOK(c, out)
}
