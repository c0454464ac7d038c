// Package handlers wires HTTP actions to the entity store. Each handler
// resolves the identity if the route carries one, asks the guard, executes
// against the store and renders the result through the serializer.
package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/serialize"
	"github.com/taskhive/taskhive/internal/store"
	"github.com/taskhive/taskhive/internal/utils"
)

type Handler struct {
	store  store.Store
	tokens *auth.TokenManager
	guard  *authz.Guard
}

func New(st store.Store, tokens *auth.TokenManager, guard *authz.Guard) *Handler {
	return &Handler{store: st, tokens: tokens, guard: guard}
}

func (h *Handler) respondError(ctx *gin.Context, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	ctx.JSON(status, gin.H{"error": apperrors.Message(err)})
}

// currentMember resolves the authenticated identity to a live member row.
// Token validation alone is not enough to trust an identity; the member
// may have been deleted since the token was issued.
func (h *Handler) currentMember(ctx *gin.Context) (*models.Member, error) {
	memberID, err := utils.CurrentMemberID(ctx)
	if err != nil {
		return nil, apperrors.Authentication("Authentication required")
	}
	return h.store.MemberByID(memberID)
}

func identityOf(m *models.Member) *authz.Identity {
	return &authz.Identity{ID: m.ID, Username: m.Username, Role: m.Role}
}

func pathID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NotFound("Resource not found")
	}
	return uint(id), nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.Validation("Invalid date format, expected YYYY-MM-DD")
	}
	return date, nil
}

// memberGraph assembles the forward relations the serializer expands:
// owned projects with their tasks, plus assigned tasks.
func (h *Handler) memberGraph(m models.Member) (map[string]interface{}, error) {
	owned, err := h.store.ProjectsByOwner(m.ID)
	if err != nil {
		return nil, err
	}

	tasksByProject := make(map[uint][]models.Task, len(owned))
	for _, p := range owned {
		tasks, err := h.store.TasksByProject(p.ID)
		if err != nil {
			return nil, err
		}
		tasksByProject[p.ID] = tasks
	}

	assigned, err := h.store.TasksByAssignee(m.ID)
	if err != nil {
		return nil, err
	}

	return serialize.Member(m, owned, tasksByProject, assigned), nil
}

func (h *Handler) projectGraph(p models.Project) (map[string]interface{}, error) {
	tasks, err := h.store.TasksByProject(p.ID)
	if err != nil {
		return nil, err
	}
	return serialize.Project(p, tasks), nil
}
