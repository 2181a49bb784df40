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

type MeetingHandler struct {
	meetingService *services.MeetingService
}

func NewMeetingHandler(db *gorm.DB) *MeetingHandler {
	return &MeetingHandler{
		meetingService: services.NewMeetingService(db),
	}
}

// List returns paginated meetings
// GET /api/meetings
func (h *MeetingHandler) List(c *gin.Context) {
	var req services.MeetingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	resp, err := h.meetingService.List(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns the full meeting aggregate by ID
// GET /api/meetings/:id
func (h *MeetingHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	actor := middleware.GetActor(c)
	meeting, err := h.meetingService.GetByID(actor, uint(id))
	if err != nil {
		recordDenial(err, "meeting")
		response.Error(c, err)
		return
	}

	response.Success(c, meeting)
}

// Create records a meeting with its brand discussions and action items
// POST /api/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	var req services.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	meeting, err := h.meetingService.Create(actor, &req)
	if err != nil {
		recordDenial(err, "meeting")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("meeting", "create")
	response.Created(c, meeting)
}

// Update applies a partial update to the meeting aggregate
// PUT /api/meetings/:id
func (h *MeetingHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	var req services.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	meeting, err := h.meetingService.Update(actor, uint(id), &req)
	if err != nil {
		recordDenial(err, "meeting")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("meeting", "update")
	response.Success(c, meeting)
}

// Delete removes a meeting and its child rows
// DELETE /api/meetings/:id
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	actor := middleware.GetActor(c)
	if err := h.meetingService.Delete(actor, uint(id)); err != nil {
		recordDenial(err, "meeting")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("meeting", "delete")
	response.Success(c, gin.H{"message": "meeting deleted successfully"})
}

type completeActionItemRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// CompleteActionItem toggles an action item's completed flag
// PATCH /api/meetings/:id/action-items/:item_id
func (h *MeetingHandler) CompleteActionItem(c *gin.Context) {
	meetingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid action item id")
		return
	}

	var req completeActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	item, err := h.meetingService.CompleteActionItem(actor, uint(meetingID), uint(itemID), *req.Completed)
	if err != nil {
		recordDenial(err, "meeting")
		response.Error(c, err)
		return
	}

	response.Success(c, item)
}
