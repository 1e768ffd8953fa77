package handler

import (
	"net/http"

	"qrmenu/internal/middleware"
	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type sendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.auth.RequestOTP(c.Request.Context(), req.PhoneNumber); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OTP sent successfully", nil)
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, user, err := h.auth.VerifyOTP(req.PhoneNumber, req.OTP)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OTP verified successfully", gin.H{"token": token, "user": user})
}

type registerRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, user, created, err := h.auth.Register(req.PhoneNumber, req.Password, c.ClientIP())
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	message := "logged in successfully"
	if created {
		status = http.StatusCreated
		message = "account created successfully"
	}
	respond(c, status, message, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, user, err := h.auth.Login(req.PhoneNumber, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "logged in successfully", gin.H{"token": token, "user": user})
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyToken lets the client confirm a stored token is still valid.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.auth.VerifyToken(req.Token)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "token is valid", gin.H{"user": user})
}

// CheckUser tells the client whether to show the login or registration flow.
func (h *AuthHandler) CheckUser(c *gin.Context) {
	user, err := h.auth.CheckUser(c.Query("phoneNumber"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"exists": user != nil})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.auth.GetProfile(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user})
}

type updateProfileRequest struct {
	Name               *string `json:"name"`
	Email              *string `json:"email"`
	PhoneNumber        *string `json:"phoneNumber"`
	AlternativeContact *string `json:"alternativeContact"`
	Address            *string `json:"address"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.auth.UpdateProfile(middleware.GetUserID(c), service.ProfileUpdate{
		Name:               req.Name,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		AlternativeContact: req.AlternativeContact,
		Address:            req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "profile updated successfully", gin.H{"user": user})
}
