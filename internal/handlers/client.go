package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inexss/crm-backend/internal/metrics"
	"github.com/inexss/crm-backend/internal/middleware"
	"github.com/inexss/crm-backend/internal/services"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{
		clientService: services.NewClientService(db),
	}
}

// List returns paginated clients
// GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	var req services.ClientListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.clientService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a client by ID
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	client, err := h.clientService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, client)
}

// Create creates a new client
// POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	client, err := h.clientService.Create(actor, &req)
	if err != nil {
		recordDenial(err, "client")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("client", "create")
	response.Created(c, client)
}

// Update updates a client
// PUT /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	client, err := h.clientService.Update(actor, uint(id), &req)
	if err != nil {
		recordDenial(err, "client")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("client", "update")
	response.Success(c, client)
}

// Delete deletes a client
// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	actor := middleware.GetActor(c)
	if err := h.clientService.Delete(actor, uint(id)); err != nil {
		recordDenial(err, "client")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("client", "delete")
	response.Success(c, gin.H{"message": "client deleted successfully"})
}

// recordDenial bumps the denial counter when err is an authorization
// failure.
func recordDenial(err error, entity string) {
	if response.IsAccessDenied(err) {
		metrics.RecordAccessDenied(entity)
	}
}
