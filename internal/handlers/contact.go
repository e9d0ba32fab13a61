package handlers

import (
	"net/http"
	"strconv"

	apperrors "homefinder-listings/internal/errors"
	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/listings"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contacts listings.Contacts
}

func NewContactHandler(contacts listings.Contacts) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.contacts.List(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.Error(apperrors.InvalidParameter("invalid contact body: "+err.Error(), err))
		return
	}

	created, err := h.contacts.Create(c.Request.Context(), &contact)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, models.Success(created, "Thank you! We will get back to you soon."))
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.contacts.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success[any](nil, "Contact deleted successfully"))
}

func (h *ContactHandler) UpdateContactStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body models.ContactStatusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperrors.InvalidParameter("invalid status body: "+err.Error(), err))
		return
	}

	contact, err := h.contacts.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success(contact, "Contact status updated successfully"))
}

func (h *ContactHandler) GetPropertyName(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	name, err := h.contacts.PropertyName(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success(name, "Property name retrieved successfully"))
}
