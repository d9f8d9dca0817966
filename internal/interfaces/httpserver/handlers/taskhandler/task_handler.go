package taskhandler

import (
	"context"
	"strconv"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/task"
	"crm-server/internal/domain/user"
	"crm-server/internal/interfaces/httpserver/requests/taskreq"
	"crm-server/internal/interfaces/httpserver/responses/taskres"
	"crm-server/internal/utils/platformerrors"
)

type TaskHandler struct {
	tasks     *task.Service
	users     *user.Service
	customers *customer.Service
	leads     *lead.Service
}

func NewTaskHandler(tasks *task.Service, users *user.Service, customers *customer.Service, leads *lead.Service) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users, customers: customers, leads: leads}
}

// taskRefs holds resolved internal IDs for the public-ID references a task
// request may carry.
type taskRefs struct {
	assigneeID *uint
	customerID *uint
	leadID     *uint
}

func (h *TaskHandler) resolveRefs(ctx context.Context, assigneeID, customerID, leadID *string) (taskRefs, error) {
	var refs taskRefs
	if assigneeID != nil {
		usr, err := h.users.GetByPublicID(ctx, *assigneeID)
		if err != nil {
			return refs, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve assignee")
		}
		refs.assigneeID = &usr.ID
	}
	if customerID != nil {
		cust, err := h.customers.GetByPublicID(ctx, *customerID)
		if err != nil {
			return refs, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve customer")
		}
		refs.customerID = &cust.ID
	}
	if leadID != nil {
		ld, err := h.leads.GetByPublicID(ctx, *leadID)
		if err != nil {
			return refs, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve lead")
		}
		refs.leadID = &ld.ID
	}
	return refs, nil
}

// CreateTask creates a new task, assigned to the caller unless an
// explicit assignee is given
func (h *TaskHandler) CreateTask(ctx context.Context, callerID uint, req taskreq.CreateTaskRequest) (*taskres.TaskResponse, error) {
	refs, err := h.resolveRefs(ctx, req.AssigneeID, req.CustomerID, req.LeadID)
	if err != nil {
		return nil, err
	}

	assigneeID := callerID
	if refs.assigneeID != nil {
		assigneeID = *refs.assigneeID
	}

	t, err := h.tasks.Create(ctx, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		AssigneeID:  assigneeID,
		CustomerID:  refs.customerID,
		LeadID:      refs.leadID,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create task")
	}
	return taskres.NewTaskResponse(t), nil
}

// GetTask retrieves a single task
func (h *TaskHandler) GetTask(ctx context.Context, taskID string) (*taskres.TaskResponse, error) {
	t, err := h.tasks.GetByPublicID(ctx, taskID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get task")
	}
	return taskres.NewTaskResponse(t), nil
}

// ListTasks lists tasks with filters and pagination
func (h *TaskHandler) ListTasks(ctx context.Context, filter task.Filter, pagination *query.Pagination) (*taskres.TaskListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	tasks, total, err := h.tasks.List(ctx, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list tasks")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(tasks) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(tasks[lastIndex].ID), 10)
		nextCursor = &cursorValue
		tasks = tasks[:*requestedLimit]
	}

	return taskres.NewTaskListResponse(tasks, hasMore, nextCursor, total), nil
}

// UpdateTask patches a task
func (h *TaskHandler) UpdateTask(ctx context.Context, taskID string, req taskreq.UpdateTaskRequest) (*taskres.TaskResponse, error) {
	var status *task.Status
	if req.Status != nil {
		parsed, ok := task.ParseStatus(*req.Status)
		if !ok {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid task status", nil, "e4f1c7a2-5b8d-4e3a-9c6f-2d7b8a1e4c9f")
		}
		status = &parsed
	}

	refs, err := h.resolveRefs(ctx, req.AssigneeID, req.CustomerID, req.LeadID)
	if err != nil {
		return nil, err
	}

	t, err := h.tasks.Update(ctx, taskID, task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueAt:       req.DueAt,
		AssigneeID:  refs.assigneeID,
		CustomerID:  refs.customerID,
		LeadID:      refs.leadID,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update task")
	}
	return taskres.NewTaskResponse(t), nil
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(ctx context.Context, taskID string) (*taskres.TaskDeletedResponse, error) {
	if err := h.tasks.Delete(ctx, taskID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete task")
	}
	return &taskres.TaskDeletedResponse{
		ID:      taskID,
		Object:  "task.deleted",
		Deleted: true,
	}, nil
}
