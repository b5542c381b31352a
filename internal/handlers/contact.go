package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/dto"
	"github.com/buildvance/estimator-backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (ch *ContactHandler) Save(c *gin.Context) {
	var req dto.ContactDto
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	contact, err := dto.ContactFromDto(req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	saved, err := ch.contactService.Save(c.Request.Context(), contact)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.ContactToDto(saved))
}

func (ch *ContactHandler) Update(c *gin.Context) {
	var req dto.ContactDto
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	req.ID = c.Param("id")
	contact, err := dto.ContactFromDto(req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	updated, err := ch.contactService.Update(c.Request.Context(), contact)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.ContactToDto(updated))
}

func (ch *ContactHandler) Delete(c *gin.Context) {
	id, err := dto.ParseUUID("contact id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := ch.contactService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

func (ch *ContactHandler) GetByID(c *gin.Context) {
	id, err := dto.ParseUUID("contact id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	contact, err := ch.contactService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.ContactToDto(contact))
}

func (ch *ContactHandler) GetByEmail(c *gin.Context) {
	contact, err := ch.contactService.GetByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.ContactToDto(contact))
}
