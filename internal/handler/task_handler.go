package handler

import (
	"log/slog"
	"net/http"

	"flowboard/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// List godoc
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        boardId  query     string  false  "Only tasks on this board"
// @Success      200      {array}   TaskResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	tasks, err := h.svc.List(c.Request.Context(), userID, c.Query("boardId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, newTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      TaskRequest  true  "Task"
// @Success      201   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	var req TaskRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), userID, service.NewTask{
		Title:   req.Title,
		Label:   req.Label,
		DueDate: req.DueDate.Time,
		Status:  req.Status,
		BoardID: req.BoardID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

// Update godoc
// @Summary      Update a task
// @Description  Partial update; fields left out are unchanged.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      TaskUpdateRequest  true  "Changes"
// @Success      200   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	task, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), service.TaskPatch{
		Title:        req.Title,
		Label:        req.Label,
		DueDate:      req.DueDate.Time,
		ClearDueDate: req.DueDate.Set && req.DueDate.Time == nil,
		Status:       req.Status,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
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
