package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/serialize"
	"github.com/taskhive/taskhive/internal/store"
)

type CreateTaskRequest struct {
	TaskName         string `json:"task_name" binding:"required"`
	Description      string `json:"description"`
	Status           string `json:"status"`
	Deadline         string `json:"deadline"`
	ProjectID        uint   `json:"project_id" binding:"required"`
	AssignedMemberID uint   `json:"assigned_member_id" binding:"required"`
}

type UpdateTaskRequest struct {
	TaskName         *string `json:"task_name"`
	Description      *string `json:"description"`
	Status           *string `json:"status"`
	Deadline         *string `json:"deadline"`
	ProjectID        *uint   `json:"project_id"`
	AssignedMemberID *uint   `json:"assigned_member_id"`
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionListTasks); err != nil {
		h.respondError(ctx, err)
		return
	}

	tasks, err := h.store.Tasks()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	response := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, serialize.Task(t))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	member, err := h.currentMember(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.guard.Authorize(identityOf(member), authz.ActionCreateTask); err != nil {
		h.respondError(ctx, err)
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task := models.Task{
		TaskName:         body.TaskName,
		Description:      body.Description,
		Status:           body.Status,
		ProjectID:        body.ProjectID,
		AssignedMemberID: body.AssignedMemberID,
	}

	if body.Deadline != "" {
		deadline, err := parseDate(body.Deadline)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		task.Deadline = &deadline
	}

	if err := h.store.CreateTask(&task); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, serialize.Task(task))
}

func (h *Handler) GetTask(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionReadTask); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	task, err := h.store.TaskByID(id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, serialize.Task(*task))
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionUpdateTask); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := store.TaskPatch{
		TaskName:         body.TaskName,
		Description:      body.Description,
		Status:           body.Status,
		ProjectID:        body.ProjectID,
		AssignedMemberID: body.AssignedMemberID,
	}

	if body.Deadline != nil {
		deadline, err := parseDate(*body.Deadline)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		patch.Deadline = &deadline
	}

	task, err := h.store.UpdateTask(id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, serialize.Task(*task))
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionDeleteTask); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.store.DeleteTask(id); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
