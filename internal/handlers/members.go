package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/store"
)

type UpdateMemberRequest struct {
	Username     *string `json:"username"`
	Password     *string `json:"password"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	FullName     *string `json:"full_name"`
	Gender       *string `json:"gender"`
	MemberNo     *string `json:"member_no"`
	DateOfBirth  *string `json:"date_of_birth"`
	MemberStatus *string `json:"member_status"`
	IDNo         *string `json:"id_no"`
	Address      *string `json:"address"`
}

func (h *Handler) ListMembers(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionListMembers); err != nil {
		h.respondError(ctx, err)
		return
	}

	members, err := h.store.Members()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	response := make([]map[string]interface{}, 0, len(members))
	for _, m := range members {
		graph, err := h.memberGraph(m)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		response = append(response, graph)
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateMember is the admin-style POST /users. Unlike signup it defaults
// role to "user", which the store's role check rejects; the request must
// carry an explicit valid role to succeed.
func (h *Handler) CreateMember(ctx *gin.Context) {
	var body SignupRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.guard.Authorize(nil, authz.ActionCreateMember); err != nil {
		h.respondError(ctx, err)
		return
	}

	member, err := h.buildMember(body, "user", "active")
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.store.CreateMember(member); err != nil {
		h.respondError(ctx, err)
		return
	}

	graph, err := h.memberGraph(*member)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, graph)
}

func (h *Handler) GetMember(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionReadMember); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	member, err := h.store.MemberByID(id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	graph, err := h.memberGraph(*member)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, graph)
}

func (h *Handler) UpdateMember(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionUpdateMember); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	var body UpdateMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := store.MemberPatch{
		Username:     body.Username,
		FullName:     body.FullName,
		Email:        body.Email,
		Role:         body.Role,
		Gender:       body.Gender,
		MemberNo:     body.MemberNo,
		MemberStatus: body.MemberStatus,
		IDNo:         body.IDNo,
		Address:      body.Address,
	}

	if body.Password != nil {
		hash, err := auth.HashPassword(*body.Password)
		if err != nil {
			h.respondError(ctx, apperrors.Internal(err, "Internal server error"))
			return
		}
		patch.Credential = &hash
	}

	if body.DateOfBirth != nil {
		dateOfBirth, err := parseDate(*body.DateOfBirth)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		patch.DateOfBirth = &dateOfBirth
	}

	member, err := h.store.UpdateMember(id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	graph, err := h.memberGraph(*member)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, graph)
}

func (h *Handler) DeleteMember(ctx *gin.Context) {
	if err := h.guard.Authorize(nil, authz.ActionDeleteMember); err != nil {
		h.respondError(ctx, err)
		return
	}

	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.store.DeleteMember(id); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
