package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/serialize"
	"github.com/taskhive/taskhive/internal/store"
)

type CreateProjectRequest struct {
	ProjectName string `json:"project_name" binding:"required"`
	Details     string `json:"details"`
	Deadline    string `json:"deadline"`
}

type UpdateProjectRequest struct {
	ProjectName *string `json:"project_name"`
	Details     *string `json:"details"`
	Deadline    *string `json:"deadline"`
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionListProjects); err != nil {
		h.respondError(ctx, err)
		return
	}

	projects, err := h.store.Projects()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	response := make([]map[string]interface{}, 0, len(projects))
	for _, p := range projects {
		graph, err := h.projectGraph(p)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		response = append(response, graph)
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	member, err := h.currentMember(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.guard.Authorize(identityOf(member), authz.ActionCreateProject); err != nil {
		h.respondError(ctx, err)
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project := models.Project{
		ProjectName: body.ProjectName,
		Details:     body.Details,
		OwnerID:     member.ID,
	}

	if body.Deadline != "" {
		deadline, err := parseDate(body.Deadline)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		project.Deadline = &deadline
	}

	if err := h.store.CreateProject(&project); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, serialize.Project(project, nil))
}

func (h *Handler) GetProject(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionReadProject); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	project, err := h.store.ProjectByID(id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	graph, err := h.projectGraph(*project)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, graph)
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionUpdateProject); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := store.ProjectPatch{
		ProjectName: body.ProjectName,
		Details:     body.Details,
	}

	if body.Deadline != nil {
		deadline, err := parseDate(*body.Deadline)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		patch.Deadline = &deadline
	}

	project, err := h.store.UpdateProject(id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	graph, err := h.projectGraph(*project)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, graph)
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionDeleteProject); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.store.DeleteProject(id); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
