package handlers

import (
	"net/http"
	"strconv"

	"clubhouse/services"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
	hub          *services.Hub
}

func NewScoreHandler(scoreService *services.ScoreService, hub *services.Hub) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService, hub: hub}
}

func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req services.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.scoreService.SubmitScore(eventID, &req, h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, score)
}

func (h *ScoreHandler) ListScores(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	day, _ := strconv.Atoi(c.DefaultQuery("day", "0"))
	scores, err := h.scoreService.GetScores(eventID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scores)
}

func (h *ScoreHandler) QueueOffline(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req services.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.scoreService.QueueOffline(eventID, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Score queued for sync"})
}

func (h *ScoreHandler) SyncPending(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
		return
	}

	result, err := h.scoreService.SyncPending(eventID, day, h.hub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
