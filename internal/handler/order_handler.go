package handler

import (
	"net/http"

	"qrmenu/internal/middleware"
	"qrmenu/internal/models"
	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	TableNumber string            `json:"tableNumber"`
	Items       models.OrderItems `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
	Note        string            `json:"note"`
}

// Create places a pay-later order (counter or cash settlement).
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.orders.Create(service.CreateOrderInput{
		TableNumber: req.TableNumber,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
		Note:        req.Note,
		PhoneNumber: middleware.GetPhoneNumber(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "order placed successfully", gin.H{"order": order})
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"order": order})
}

// ListMine returns the authenticated customer's order history. An account
// without a phone number on file has no orders; the empty filter is
// reserved for the staff listing.
func (h *OrderHandler) ListMine(c *gin.Context) {
	phone := middleware.GetPhoneNumber(c)
	if phone == "" {
		respond(c, http.StatusOK, "", gin.H{"orders": []models.Order{}})
		return
	}
	orders, err := h.orders.List(phone)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

// ListAll returns every order for the staff dashboard.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.List("")
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

// PendingVerification lists orders awaiting the manager's check.
func (h *OrderHandler) PendingVerification(c *gin.Context) {
	orders, err := h.orders.PendingVerification()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

// ChefQueue lists verified orders the kitchen still has to work.
func (h *OrderHandler) ChefQueue(c *gin.Context) {
	orders, err := h.orders.ChefQueue()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

func (h *OrderHandler) Verify(c *gin.Context) {
	order, err := h.orders.VerifyByManager(c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "order verified", gin.H{"order": order})
}

type updateStatusRequest struct {
	CookStatus string `json:"cookStatus"`
}

func (h *OrderHandler) UpdateCookStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.orders.UpdateCookStatus(c.Param("orderId"), req.CookStatus)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "order status updated", gin.H{"order": order})
}
