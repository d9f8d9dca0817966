package task

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	taskdomain "crm-server/internal/domain/task"
	"crm-server/internal/interfaces/httpserver/handlers/taskhandler"
	"crm-server/internal/interfaces/httpserver/middlewares"
	"crm-server/internal/interfaces/httpserver/requests"
	"crm-server/internal/interfaces/httpserver/requests/taskreq"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

// TaskRoute handles task routes
type TaskRoute struct {
	handler *taskhandler.TaskHandler
}

// NewTaskRoute creates a new task route
func NewTaskRoute(handler *taskhandler.TaskHandler) *TaskRoute {
	return &TaskRoute{handler: handler}
}

// RegisterRouter registers task routes on the authenticated router
func (r *TaskRoute) RegisterRouter(router gin.IRouter) {
	tasks := router.Group("/tasks")
	tasks.POST("", r.createTask)
	tasks.GET("", r.listTasks)
	tasks.GET("/:task_id", r.getTask)
	tasks.PATCH("/:task_id", r.updateTask)
	tasks.DELETE("/:task_id", r.deleteTask)
}

// createTask godoc
// @Summary Create a task
// @Description Creates a task. When no assignee is given, the task is assigned to the caller.
// @Tags Tasks API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body taskreq.CreateTaskRequest true "Task fields"
// @Success 201 {object} taskres.TaskResponse "The created task"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/tasks [post]
func (r *TaskRoute) createTask(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "1a7d3e9c-8b2f-4c5e-a4b6-3f9d1e7c5a90")
		return
	}

	var req taskreq.CreateTaskRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "7e4b9c2a-5d1f-4a8e-b2c7-6f3e8d9a1c50")
		return
	}

	resp, err := r.handler.CreateTask(reqCtx.Request.Context(), principal.UserID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create task")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// listTasks godoc
// @Summary List tasks
// @Description Lists tasks with optional search, status and assignee filters. Pass assignee=me for the caller's own tasks.
// @Tags Tasks API
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against title and description"
// @Param status query string false "Filter by status (OPEN, IN_PROGRESS, DONE)"
// @Param assignee query string false "Set to 'me' to list only tasks assigned to the caller"
// @Param limit query int false "Maximum number of tasks to return"
// @Param after query string false "Return tasks created after the given cursor"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} taskres.TaskListResponse "Paginated tasks"
// @Failure 400 {object} responses.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/tasks [get]
func (r *TaskRoute) listTasks(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	var filter taskdomain.Filter
	if search := strings.TrimSpace(reqCtx.Query("search")); search != "" {
		filter.Search = &search
	}
	if raw := reqCtx.Query("status"); raw != "" {
		status, ok := taskdomain.ParseStatus(raw)
		if !ok {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unknown task status", "b2e6c8a4-9f1d-4e7a-a3b8-5d2f7c9e1a60")
			return
		}
		filter.Status = &status
	}
	if reqCtx.Query("assignee") == "me" {
		principal, ok := middlewares.PrincipalFromContext(reqCtx)
		if !ok {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "4c9a1e5b-7d3f-4b6e-b8a2-1e5c9f7d3a40")
			return
		}
		filter.AssigneeID = &principal.UserID
	}

	resp, err := r.handler.ListTasks(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list tasks")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// getTask godoc
// @Summary Get a task
// @Description Returns a single task by its public ID.
// @Tags Tasks API
// @Security BearerAuth
// @Produce json
// @Param task_id path string true "Task public ID"
// @Success 200 {object} taskres.TaskResponse "The task"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/tasks/{task_id} [get]
func (r *TaskRoute) getTask(reqCtx *gin.Context) {
	resp, err := r.handler.GetTask(reqCtx.Request.Context(), reqCtx.Param("task_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get task")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// updateTask godoc
// @Summary Update a task
// @Description Patches a task, including its status. Absent fields are left untouched.
// @Tags Tasks API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param task_id path string true "Task public ID"
// @Param request body taskreq.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} taskres.TaskResponse "The updated task"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body or status"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/tasks/{task_id} [patch]
func (r *TaskRoute) updateTask(reqCtx *gin.Context) {
	var req taskreq.UpdateTaskRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "8d2f6b4c-1e9a-4d3e-a7c5-9b1e4f8d2a70")
		return
	}

	resp, err := r.handler.UpdateTask(reqCtx.Request.Context(), reqCtx.Param("task_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update task")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deleteTask godoc
// @Summary Delete a task
// @Description Removes a task.
// @Tags Tasks API
// @Security BearerAuth
// @Produce json
// @Param task_id path string true "Task public ID"
// @Success 200 {object} taskres.TaskDeletedResponse "Delete confirmation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/tasks/{task_id} [delete]
func (r *TaskRoute) deleteTask(reqCtx *gin.Context) {
	resp, err := r.handler.DeleteTask(reqCtx.Request.Context(), reqCtx.Param("task_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete task")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
