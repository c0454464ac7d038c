package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/apperrors"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/store"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Email        string `json:"email" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Gender       string `json:"gender" binding:"required"`
	MemberNo     string `json:"member_no" binding:"required"`
	DateOfBirth  string `json:"date_of_birth" binding:"required"`
	IDNo         string `json:"id_no" binding:"required"`
	Address      string `json:"address"`
	Role         string `json:"role"`
	MemberStatus string `json:"member_status"`
}

type ChangePasswordRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.guard.Authorize(nil, authz.ActionLogin); err != nil {
		h.respondError(ctx, err)
		return
	}

	member, err := h.store.MemberByUsername(body.Username)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ok, err := auth.VerifyPassword(member.Credential, body.Password)
	if err != nil {
		h.respondError(ctx, apperrors.Internal(err, "Internal server error"))
		return
	}
	if !ok {
		h.respondError(ctx, apperrors.Authentication("Invalid password"))
		return
	}

	token, err := h.tokens.Issue(member.ID)
	if err != nil {
		h.respondError(ctx, apperrors.Internal(err, "Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) Signup(ctx *gin.Context) {
	var body SignupRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.guard.Authorize(nil, authz.ActionSignup); err != nil {
		h.respondError(ctx, err)
		return
	}

	member, err := h.buildMember(body, models.RoleMember, "inactive")
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.store.CreateMember(member); err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.tokens.Issue(member.ID)
	if err != nil {
		h.respondError(ctx, apperrors.Internal(err, "Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *Handler) CheckSession(ctx *gin.Context) {
	member, err := h.currentMember(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.guard.Authorize(identityOf(member), authz.ActionCheckSession); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":       member.ID,
		"username": member.Username,
		"role":     member.Role,
	})
}

// Logout changes no server state; the token stays valid until expiry and
// the client simply discards it.
func (h *Handler) Logout(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

func (h *Handler) ChangePassword(ctx *gin.Context) {
	current, err := h.currentMember(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.guard.Authorize(identityOf(current), authz.ActionChangePassword); err != nil {
		h.respondError(ctx, err)
		return
	}

	var body ChangePasswordRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	target, err := h.store.MemberByID(body.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ok, err := auth.VerifyPassword(target.Credential, body.CurrentPassword)
	if err != nil {
		h.respondError(ctx, apperrors.Internal(err, "Internal server error"))
		return
	}
	if !ok {
		h.respondError(ctx, apperrors.Validation("Current password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		h.respondError(ctx, apperrors.Internal(err, "Internal server error"))
		return
	}

	if _, err := h.store.UpdateMember(target.ID, store.MemberPatch{Credential: &hash}); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// buildMember turns a signup-shaped request into a member row, hashing the
// password and applying the given defaults for role and member_status.
func (h *Handler) buildMember(body SignupRequest, defaultRole, defaultStatus string) (*models.Member, error) {
	dateOfBirth, err := parseDate(body.DateOfBirth)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return nil, apperrors.Internal(err, "Internal server error")
	}

	role := body.Role
	if role == "" {
		role = defaultRole
	}
	status := body.MemberStatus
	if status == "" {
		status = defaultStatus
	}

	return &models.Member{
		Username:     body.Username,
		FullName:     body.FullName,
		Credential:   hash,
		Email:        body.Email,
		Role:         role,
		Gender:       body.Gender,
		MemberNo:     body.MemberNo,
		DateOfBirth:  dateOfBirth,
		MemberStatus: status,
		IDNo:         body.IDNo,
		Address:      body.Address,
	}, nil
}
