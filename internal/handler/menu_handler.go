package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/internal/repository"
	"qrmenu/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

// MenuHandler is plain CRUD over menu items plus image upload; thin enough
// to sit directly on the repository.
type MenuHandler struct {
	menu   *repository.MenuRepository
	images cloudinary.Client
}

func NewMenuHandler(menu *repository.MenuRepository, images cloudinary.Client) *MenuHandler {
	return &MenuHandler{menu: menu, images: images}
}

func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menu.List()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"items": items})
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

func (req menuItemRequest) validate() error {
	if req.Name == "" || req.Category == "" {
		return fmt.Errorf("%w: name and category are required", domain.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", domain.ErrValidation)
	}
	return nil
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.validate(); err != nil {
		fail(c, err)
		return
	}
	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	if err := h.menu.Create(item); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "menu item created", gin.H{"item": item})
}

func (h *MenuHandler) Update(c *gin.Context) {
	id, err := menuItemID(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.validate(); err != nil {
		fail(c, err)
		return
	}
	item, err := h.menu.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if err := h.menu.Save(item); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "menu item updated", gin.H{"item": item})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := menuItemID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if _, err := h.menu.GetByID(id); err != nil {
		fail(c, err)
		return
	}
	if err := h.menu.Delete(id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "menu item deleted", nil)
}

// UploadImage stores the item photo and saves the optimized delivery URL.
func (h *MenuHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		fail(c, fmt.Errorf("%w: image storage is not configured", domain.ErrUpstream))
		return
	}
	id, err := menuItemID(c)
	if err != nil {
		fail(c, err)
		return
	}
	item, err := h.menu.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		fail(c, fmt.Errorf("%w: image file is required", domain.ErrValidation))
		return
	}
	defer file.Close()
	if header.Size > 10<<20 {
		fail(c, fmt.Errorf("%w: image exceeds 10MB", domain.ErrValidation))
		return
	}

	url, err := h.images.UploadImage(c.Request.Context(), file, "menu", fmt.Sprintf("item_%d", id))
	if err != nil {
		fail(c, fmt.Errorf("%w: upload image: %v", domain.ErrUpstream, err))
		return
	}
	item.ImageURL = url
	if err := h.menu.Save(item); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "image uploaded", gin.H{"item": item})
}

func menuItemID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid menu item id", domain.ErrValidation)
	}
	return uint(id), nil
}
