package handlers

import (
	"net/http"
	"strconv"

	"clubhouse/services"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService *services.FinanceService
	paymentService *services.PaymentService
}

func NewFinanceHandler(financeService *services.FinanceService, paymentService *services.PaymentService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		paymentService: paymentService,
	}
}

func (h *FinanceHandler) AddRecord(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req services.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.financeService.AddRecord(eventID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *FinanceHandler) ListRecords(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	records, err := h.financeService.ListRecords(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *FinanceHandler) DeleteRecord(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	recordID, err := strconv.ParseUint(c.Param("recordId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.financeService.DeleteRecord(eventID, uint(recordID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	summary, err := h.financeService.Summary(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *FinanceHandler) PaymentLink(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	memo := c.Query("memo")

	var link string
	switch c.Query("method") {
	case "zelle":
		link, err = h.paymentService.ZelleLink(amount, memo)
	default:
		link, err = h.paymentService.PayPalLink(amount, memo)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": link})
}
