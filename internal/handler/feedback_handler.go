package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"qrmenu/internal/domain"
	"qrmenu/internal/middleware"
	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedback *service.FeedbackService
}

func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type submitFeedbackRequest struct {
	OrderID       string `json:"orderId"`
	ServiceRating int    `json:"serviceRating"`
	FoodRating    int    `json:"foodRating"`
	PriceRating   int    `json:"priceRating"`
	TimeRating    int    `json:"timeRating"`
	Comment       string `json:"comment"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	f, err := h.feedback.Submit(service.FeedbackInput{
		OrderID:       req.OrderID,
		PhoneNumber:   middleware.GetPhoneNumber(c),
		ServiceRating: req.ServiceRating,
		FoodRating:    req.FoodRating,
		PriceRating:   req.PriceRating,
		TimeRating:    req.TimeRating,
		Comment:       req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "feedback submitted successfully", gin.H{"feedback": f})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	items, err := h.feedback.List(c.Query("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"feedback": items})
}

type updateFeedbackRequest struct {
	Remedy *string `json:"remedy"`
	Status *string `json:"status"`
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	id, err := feedbackID(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req updateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	f, err := h.feedback.Update(id, service.FeedbackUpdate{Remedy: req.Remedy, Status: req.Status})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "feedback updated", gin.H{"feedback": f})
}

// GenerateRemedy drafts an AI response for the owner to review.
func (h *FeedbackHandler) GenerateRemedy(c *gin.Context) {
	id, err := feedbackID(c)
	if err != nil {
		fail(c, err)
		return
	}
	f, err := h.feedback.GenerateRemedy(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "remedy generated", gin.H{"feedback": f})
}

func feedbackID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid feedback id", domain.ErrValidation)
	}
	return uint(id), nil
}
