package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskdeck/internal/api/dto"
	"github.com/martijn/taskdeck/internal/api/middleware"
	"github.com/martijn/taskdeck/internal/core/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Index handles GET /. Unauthenticated visitors are sent to the login
// page; a stale session gets the same 404 as the mutating routes.
func (h *TaskHandler) Index(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		if middleware.SessionStale(c) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not Found",
				Message: "User not found",
				Code:    http.StatusNotFound,
			})
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":  user,
		"Tasks": tasks,
	})
}

// Add handles POST /add
func (h *TaskHandler) Add(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form dto.AddTaskForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if _, err := h.taskService.Add(c.Request.Context(), user, form.Content); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Complete handles GET /complete/:id
func (h *TaskHandler) Complete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// Unparseable ids get the same silence as unknown ones
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.taskService.Toggle(c.Request.Context(), user, taskID); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Delete handles GET /delete/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), user, taskID); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
