package handlers

import (
	"context"
	"strings"

	"github.com/fasthttp/router"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/services"
	"github.com/bdauda29-ux/bdj-ledger/internal/session"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
)

const sessionKey = "session"

type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Create(ctx context.Context, username, password, email string, perms model.Permission) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdatePerms(ctx context.Context, id int64, perms model.Permission) error
	ChangePassword(ctx context.Context, id int64, password string) error
	Delete(ctx context.Context, id, actorID int64) error
}

type AuthHandler struct {
	svc      UserService
	sessions *session.Store
}

func NewAuthHandler(userService UserService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		svc:      userService,
		sessions: sessions,
	}
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/login", h.Login)
	e.POST("/logout", h.Require(0, h.Logout))
	e.GET("/me", h.Require(0, h.Me))

	e.GET("/users", h.Require(model.PermAdmin, h.ListUsers))
	e.POST("/users", h.Require(model.PermAdmin, h.CreateUser))
	e.PUT("/users/{id}/permissions", h.Require(model.PermAdmin, h.UpdatePermissions))
	e.PUT("/users/{id}/password", h.Require(model.PermAdmin, h.ChangePassword))
	e.DELETE("/users/{id}", h.Require(model.PermAdmin, h.DeleteUser))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	user, err := h.svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	sess, err := h.sessions.Create(user)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "create session: "+err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, loginResponse{Token: sess.Token, User: user})
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	sess := sessionFrom(ctx)
	if err := h.sessions.Delete(sess.Token); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, sessionFrom(ctx))
}

// Require authenticates the request and, when perm is non-zero, enforces the
// capability before invoking next. The session lands in the request context
// for the handler to use.
func (h *AuthHandler) Require(perm model.Permission, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		token := bearerToken(ctx)
		if token == "" {
			writeError(ctx, xhttp.StatusUnauthorized, "missing token")
			return
		}
		sess, err := h.sessions.Get(token)
		if err != nil {
			writeError(ctx, xhttp.StatusUnauthorized, "invalid or expired session")
			return
		}
		if perm != 0 && !sess.Perms.Can(perm) {
			writeError(ctx, xhttp.StatusForbidden, "permission denied")
			return
		}
		ctx.SetUserValue(sessionKey, sess)
		next(ctx)
	}
}

type createUserRequest struct {
	Username    string           `json:"username"`
	Password    string           `json:"password"`
	Email       string           `json:"email"`
	Permissions model.Permission `json:"permissions"`
}

func (h *AuthHandler) CreateUser(ctx *xhttp.RequestCtx) {
	var req createUserRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	user, err := h.svc.Create(ctx, req.Username, req.Password, req.Email, req.Permissions)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(ctx *xhttp.RequestCtx) {
	users, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, users)
}

func (h *AuthHandler) UpdatePermissions(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Permissions model.Permission `json:"permissions"`
	}
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.UpdatePerms(ctx, id, req.Permissions); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "updated"})
}

func (h *AuthHandler) ChangePassword(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.ChangePassword(ctx, id, req.Password); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "updated"})
}

func (h *AuthHandler) DeleteUser(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(ctx, id, sessionFrom(ctx).UserID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

func bearerToken(ctx *xhttp.RequestCtx) string {
	auth := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return string(ctx.Request.Header.Peek("X-Session-Token"))
}

func sessionFrom(ctx *xhttp.RequestCtx) *session.Session {
	sess, _ := ctx.UserValue(sessionKey).(*session.Session)
	return sess
}

// tenantID resolves the tenant selected into the session; every ledger
// route requires one.
func tenantID(ctx *xhttp.RequestCtx) (int64, error) {
	sess := sessionFrom(ctx)
	if sess == nil || sess.TenantID == 0 {
		return 0, services.ErrNoTenantSelected
	}
	return sess.TenantID, nil
}
