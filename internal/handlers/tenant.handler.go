package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/session"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
)

type TenantService interface {
	Create(ctx context.Context, name string) (*model.Tenant, error)
	Get(ctx context.Context, id int64) (*model.Tenant, error)
	List(ctx context.Context) ([]*model.Tenant, error)
	Rename(ctx context.Context, id int64, name string) error
	Clear(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type TenantHandler struct {
	svc      TenantService
	sessions *session.Store
}

func NewTenantHandler(tenantService TenantService, sessions *session.Store) *TenantHandler {
	return &TenantHandler{
		svc:      tenantService,
		sessions: sessions,
	}
}

func RegisterTenantRoutes(e *router.Group, auth *AuthHandler, h *TenantHandler) {
	e.GET("/tenants", auth.Require(0, h.List))
	e.POST("/tenants", auth.Require(model.PermAdmin, h.Create))
	e.PUT("/tenants/{id}", auth.Require(model.PermAdmin, h.Rename))
	e.DELETE("/tenants/{id}", auth.Require(model.PermAdmin, h.Delete))
	e.POST("/tenants/{id}/clear", auth.Require(model.PermAdmin, h.Clear))
	e.POST("/tenants/{id}/select", auth.Require(0, h.Select))
}

type tenantRequest struct {
	Name string `json:"name"`
}

func (h *TenantHandler) Create(ctx *xhttp.RequestCtx) {
	var req tenantRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	tenant, err := h.svc.Create(ctx, req.Name)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, tenant)
}

func (h *TenantHandler) List(ctx *xhttp.RequestCtx) {
	tenants, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, tenants)
}

func (h *TenantHandler) Rename(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req tenantRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.Rename(ctx, id, req.Name); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "renamed"})
}

func (h *TenantHandler) Clear(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Clear(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "cleared"})
}

func (h *TenantHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

// Select stores the tenant choice in the caller's session. Every subsequent
// ledger request is scoped to it.
func (h *TenantHandler) Select(ctx *xhttp.RequestCtx) {
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if _, err := h.svc.Get(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	sess := sessionFrom(ctx)
	sess.TenantID = id
	if err := h.sessions.Update(sess); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"status": "selected", "tenant_id": id})
}
