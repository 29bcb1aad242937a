package handler

import (
	"log/slog"
	"net/http"

	"flowboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc    *service.BoardService
	logger *slog.Logger
}

func NewBoardHandler(svc *service.BoardService, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{svc: svc, logger: logger}
}

// List godoc
// @Summary      List the caller's boards
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   BoardResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	userID, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	boards, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]BoardResponse, 0, len(boards))
	for i := range boards {
		resp = append(resp, newBoardResponse(&boards[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      BoardRequest  true  "Board"
// @Success      201   {object}  BoardResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	var req BoardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	board, err := h.svc.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newBoardResponse(board))
}

// Delete godoc
// @Summary      Delete a board
// @Description  Tasks on the board are kept.
// @Tags         boards
// @Security     BearerAuth
// @Param        id   path  string  true  "Board ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
