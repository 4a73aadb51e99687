package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tutorhub/models"
	"tutorhub/services/slot"
	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotHandler exposes the slot scheduling engine over HTTP.
type SlotHandler struct {
	Service slot.SlotService
}

func NewSlotHandler(svc slot.SlotService) *SlotHandler {
	return &SlotHandler{Service: svc}
}

// instructorID retrieves the authenticated instructor id from the context
// (set by JWTAuthInstructorMiddleware).
func instructorID(c *gin.Context) (string, bool) {
	idValue, exists := c.Get("instructorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Instructor not authenticated"})
		return "", false
	}
	id, ok := idValue.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid instructor ID in context"})
		return "", false
	}
	return id, true
}

func respondSlotError(c *gin.Context, err error) {
	var vErr *slot.ValidationError
	var cErr *slot.ConflictError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", vErr.Reason)
	case errors.As(err, &cErr):
		utils.JSONError(c, http.StatusConflict, "Slot conflict", cErr.Detail)
	case errors.Is(err, slot.ErrSlotNotFound):
		utils.JSONError(c, http.StatusNotFound, "Slot not found", err.Error())
	case errors.Is(err, slot.ErrNotSlotOwner):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	default:
		utils.GetLogger().Error("slot operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
	}
}

func (h *SlotHandler) CreateSlotHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}

	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	created, err := h.Service.CreateSlot(c.Request.Context(), id, req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": created})
}

func (h *SlotHandler) CreateRecurringSlotsHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}

	var req models.CreateRecurringSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	created, err := h.Service.CreateRecurringSlots(c.Request.Context(), id, req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": created, "count": len(created)})
}

func (h *SlotHandler) UpdateSlotHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotID")
	if slotID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing slot ID in path", "")
		return
	}

	var req models.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	updated, err := h.Service.UpdateSlot(c.Request.Context(), id, slotID, req)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": updated})
}

func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotID")
	if slotID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing slot ID in path", "")
		return
	}

	if err := h.Service.DeleteSlot(c.Request.Context(), id, slotID); err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted successfully"})
}

func (h *SlotHandler) ListSlotsHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}

	slots, err := h.Service.ListSlots(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *SlotHandler) SlotStatsHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}

	opts := models.StatsOptions{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid year", y)
			return
		}
		opts.Year = year
	}
	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid month", m)
			return
		}
		opts.Month = month
	}

	stats, err := h.Service.GetSlotStats(c.Request.Context(), id, c.Query("mode"), opts)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *SlotHandler) DeleteUnbookedSlotsForDateHandler(c *gin.Context) {
	id, ok := instructorID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing date query parameter", "")
		return
	}

	deleted, err := h.Service.DeleteUnbookedSlotsForDate(c.Request.Context(), id, date)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unbooked slots deleted", "deleted": deleted})
}
