package handlers

import (
	"context"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *model.Profile, error)
	Verify(token string) (model.Actor, error)
	CreateInvite(ctx context.Context, actor model.Actor, email string, role model.Role) (*model.Invite, error)
	RedeemInvite(ctx context.Context, token, displayName, password string) (*model.Profile, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		svc: authService,
	}
}

func RegisterAuthRoutes(e *xhttp.RouterGroup, h *AuthHandler, limiter WriteLimiter) {
	e.POST("/login", h.Login)
	e.POST("/invites", RequireAuth(h.svc, RateLimitWrites(limiter, h.CreateInvite)))
	e.POST("/invites/redeem", h.RedeemInvite)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Profile *model.Profile `json:"profile"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	token, profile, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		// login failures are always 401, never 403
		writeError(ctx, 401, "invalid credentials")
		return
	}
	writeJSON(ctx, 200, loginResponse{Token: token, Profile: profile})
}

type createInviteRequest struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func (h *AuthHandler) CreateInvite(ctx *xhttp.RequestCtx) {
	var req createInviteRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	invite, err := h.svc.CreateInvite(ctx, actor(ctx), req.Email, req.Role)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, invite)
}

type redeemInviteRequest struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

func (h *AuthHandler) RedeemInvite(ctx *xhttp.RequestCtx) {
	var req redeemInviteRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	profile, err := h.svc.RedeemInvite(ctx, req.Token, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, profile)
}
