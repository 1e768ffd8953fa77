package handler

import (
	"net/http"

	"qrmenu/internal/domain"
	"qrmenu/internal/middleware"
	"qrmenu/internal/models"
	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type checkoutRequest struct {
	TableNumber string            `json:"tableNumber"`
	Items       models.OrderItems `json:"items"`
	Amount      float64           `json:"amount"`
	Note        string            `json:"note"`
}

// CreateCheckout opens a gateway payment intent and creates the pending
// order and payment records the client will settle against.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	checkout, err := h.payments.CreateCheckout(c.Request.Context(), service.CheckoutInput{
		PhoneNumber: middleware.GetPhoneNumber(c),
		TableNumber: req.TableNumber,
		Note:        req.Note,
		Items:       req.Items,
		Amount:      req.Amount,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "checkout created", gin.H{"checkout": checkout})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"orderId"`
}

// VerifyPayment is the signed callback the client posts after the gateway
// UI closes. Field names match the gateway's checkout response verbatim.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.payments.VerifyPayment(c.Request.Context(), service.VerifyInput{
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		Signature:        req.RazorpaySignature,
		OrderID:          req.OrderID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	message := "payment verified"
	if result.Status != domain.PaymentPaid {
		message = "payment failed"
	}
	respond(c, http.StatusOK, message, gin.H{"orderId": result.OrderID, "status": result.Status})
}
