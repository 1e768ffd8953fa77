package handler

import (
	"net/http"

	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	coupons *service.CouponService
}

func NewCouponHandler(coupons *service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type applyCouponRequest struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

func (h *CouponHandler) Apply(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.coupons.Apply(req.Code, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "coupon applied", gin.H{"coupon": result})
}
