package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"qrmenu/internal/domain"
	"qrmenu/internal/repository"

	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	tables *repository.TableRepository
}

func NewTableHandler(tables *repository.TableRepository) *TableHandler {
	return &TableHandler{tables: tables}
}

func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.tables.List()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"tables": tables})
}

type updateTableRequest struct {
	Status string `json:"status"`
}

func (h *TableHandler) UpdateStatus(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		fail(c, fmt.Errorf("%w: invalid table number", domain.ErrValidation))
		return
	}
	var req updateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Status != domain.TableAvailable && req.Status != domain.TableOccupied {
		fail(c, fmt.Errorf("%w: unknown table status %q", domain.ErrValidation, req.Status))
		return
	}
	table, err := h.tables.GetByNumber(number)
	if err != nil {
		fail(c, err)
		return
	}
	table.Status = req.Status
	if err := h.tables.Save(table); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "table updated", gin.H{"table": table})
}
