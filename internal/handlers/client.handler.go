package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
)

type ClientService interface {
	Create(ctx context.Context, tenantID int64, p model.ClientCreateRequest) (*model.Client, error)
	Update(ctx context.Context, tenantID, id int64, p model.ClientCreateRequest) error
	Delete(ctx context.Context, tenantID, id int64) error
	Get(ctx context.Context, tenantID, id int64) (*model.Client, error)
	List(ctx context.Context, tenantID int64) ([]*model.Client, error)
	AdjustBalance(ctx context.Context, tenantID, id int64, amount float64, kind model.EntryType, description string) (*model.BalanceEntry, error)
	History(ctx context.Context, tenantID, id int64) ([]*model.BalanceEntry, error)
}

type ClientTransactionLister interface {
	ListByClient(ctx context.Context, tenantID int64, clientName string) ([]*model.Transaction, error)
}

type ClientHandler struct {
	svc  ClientService
	txns ClientTransactionLister
}

func NewClientHandler(clientService ClientService, txns ClientTransactionLister) *ClientHandler {
	return &ClientHandler{
		svc:  clientService,
		txns: txns,
	}
}

func RegisterClientRoutes(e *router.Group, auth *AuthHandler, h *ClientHandler) {
	e.GET("/clients", auth.Require(0, h.List))
	e.GET("/clients/{id}", auth.Require(0, h.Get))
	e.POST("/clients", auth.Require(model.PermEditClient, h.Create))
	e.PUT("/clients/{id}", auth.Require(model.PermEditClient, h.Update))
	e.DELETE("/clients/{id}", auth.Require(model.PermDeleteClient, h.Delete))
	e.POST("/clients/{id}/balance", auth.Require(model.PermEditClient, h.AdjustBalance))
	e.GET("/clients/{id}/history", auth.Require(0, h.History))
	e.GET("/clients/{id}/transactions", auth.Require(0, h.Transactions))
}

type clientRequest struct {
	Name  string `json:"client_name"`
	Phone string `json:"phone_number"`
}

func (h *ClientHandler) Create(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	var req clientRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	client, err := h.svc.Create(ctx, tenant, model.ClientCreateRequest{Name: req.Name, Phone: req.Phone})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, client)
}

func (h *ClientHandler) List(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	clients, err := h.svc.List(ctx, tenant)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, clients)
}

func (h *ClientHandler) Get(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	client, err := h.svc.Get(ctx, tenant, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, client)
}

func (h *ClientHandler) Update(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req clientRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.Update(ctx, tenant, id, model.ClientCreateRequest{Name: req.Name, Phone: req.Phone}); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "updated"})
}

func (h *ClientHandler) Delete(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(ctx, tenant, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

type adjustBalanceRequest struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

func (h *ClientHandler) AdjustBalance(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req adjustBalanceRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	kind := model.EntryType(req.Type)
	if kind != model.EntryCredit && kind != model.EntryDebit {
		writeError(ctx, xhttp.StatusBadRequest, "type must be credit or debit")
		return
	}
	entry, err := h.svc.AdjustBalance(ctx, tenant, id, req.Amount, kind, req.Description)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, entry)
}

func (h *ClientHandler) History(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	entries, err := h.svc.History(ctx, tenant, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, entries)
}

func (h *ClientHandler) Transactions(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	id, err := routeID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	client, err := h.svc.Get(ctx, tenant, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	txns, err := h.txns.ListByClient(ctx, tenant, client.Name)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txns)
}
