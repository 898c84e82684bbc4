package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/fasthttp/router"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/services"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
)

type TransactionService interface {
	Create(ctx context.Context, tenantID int64, p model.TransactionRequest) (*model.Transaction, error)
	Edit(ctx context.Context, tenantID, id int64, p model.TransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, tenantID, id int64) (*model.DeletedTransaction, error)
	Get(ctx context.Context, tenantID, id int64) (*model.Transaction, error)
	List(ctx context.Context, tenantID int64, f model.TransactionFilter) ([]*model.Transaction, *model.TransactionSums, error)
	Pay(ctx context.Context, tenantID, id int64) error
	UndoPay(ctx context.Context, tenantID, id int64) error
	Restore(ctx context.Context, tenantID, binID int64) (*model.Transaction, error)
	Purge(ctx context.Context, tenantID, binID int64) error
	ListBin(ctx context.Context, tenantID int64) ([]*model.DeletedTransaction, error)
}

type TransactionHandler struct {
	svc TransactionService
}

func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{
		svc: transactionService,
	}
}

func RegisterTransactionRoutes(e *router.Group, auth *AuthHandler, h *TransactionHandler) {
	e.GET("/transactions", auth.Require(0, h.List))
	e.GET("/transactions/{id}", auth.Require(0, h.Get))
	e.POST("/transactions", auth.Require(model.PermAddTransaction, h.Create))
	e.PUT("/transactions/{id}", auth.Require(model.PermEditTransaction, h.Edit))
	e.DELETE("/transactions/{id}", auth.Require(model.PermDeleteTransaction, h.Delete))
	e.POST("/transactions/{id}/pay", auth.Require(model.PermAddTransaction, h.Pay))
	e.POST("/transactions/{id}/undo-pay", auth.Require(model.PermEditTransaction, h.UndoPay))

	e.GET("/bin", auth.Require(0, h.ListBin))
	e.POST("/bin/{id}/restore", auth.Require(model.PermDeleteTransaction, h.Restore))
	e.DELETE("/bin/{id}", auth.Require(model.PermDeleteTransaction, h.Purge))
}

// transactionRequest carries rate and addition as strings so absent or
// malformed values can fall back to the documented defaults instead of
// failing the request.
type transactionRequest struct {
	ClientName      string `json:"client_name"`
	ApplicantName   string `json:"applicant_name"`
	Email           string `json:"email"`
	EmailLink       string `json:"email_link"`
	ServiceType     string `json:"service_type"`
	AppID           int64  `json:"app_id"`
	CountryName     string `json:"country_name"`
	Rate            string `json:"rate"`
	Addition        string `json:"addition"`
	TransactionDate string `json:"transaction_date"`
}

func (r transactionRequest) toModel() model.TransactionRequest {
	p := model.TransactionRequest{
		ClientName:    r.ClientName,
		ApplicantName: r.ApplicantName,
		Email:         r.Email,
		EmailLink:     r.EmailLink,
		ServiceType:   r.ServiceType,
		AppID:         r.AppID,
		CountryName:   r.CountryName,
		Rate:          services.ParseRate(r.Rate),
		Addition:      services.ParseAddition(r.Addition),
	}
	if r.TransactionDate != "" {
		if t, err := parseTime(r.TransactionDate); err == nil {
			p.TransactionDate = &t
		}
	}
	return p
}

type listTransactionsResponse struct {
	Items []*model.Transaction   `json:"items"`
	Sums  *model.TransactionSums `json:"sums"`
}

func (h *TransactionHandler) Create(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	var req transactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	txn, err := h.svc.Create(ctx, tenant, req.toModel())
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, txn)
}

func (h *TransactionHandler) List(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	var f model.TransactionFilter
	if v := query(ctx, "client"); v != "" {
		f.ClientName = &v
	}
	if v := query(ctx, "country"); v != "" {
		f.CountryName = &v
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.DateFrom = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			// make "to" inclusive for date-only input
			t = t.Add(24*time.Hour - time.Nanosecond)
			f.DateTo = &t
		}
	}
	if v := query(ctx, "paid"); v != "" {
		if b, e := strconv.ParseBool(v); e == nil {
			f.Paid = &b
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}

	items, sums, err := h.svc.List(ctx, tenant, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listTransactionsResponse{Items: items, Sums: sums})
}

func (h *TransactionHandler) Get(ctx *xhttp.RequestCtx) {
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
	txn, err := h.svc.Get(ctx, tenant, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txn)
}

func (h *TransactionHandler) Edit(ctx *xhttp.RequestCtx) {
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
	var req transactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	txn, err := h.svc.Edit(ctx, tenant, id, req.toModel())
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txn)
}

func (h *TransactionHandler) Delete(ctx *xhttp.RequestCtx) {
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
	stashed, err := h.svc.Delete(ctx, tenant, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stashed)
}

func (h *TransactionHandler) Pay(ctx *xhttp.RequestCtx) {
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
	if err := h.svc.Pay(ctx, tenant, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "paid"})
}

func (h *TransactionHandler) UndoPay(ctx *xhttp.RequestCtx) {
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
	if err := h.svc.UndoPay(ctx, tenant, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "unpaid"})
}

func (h *TransactionHandler) ListBin(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	entries, err := h.svc.ListBin(ctx, tenant)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, entries)
}

func (h *TransactionHandler) Restore(ctx *xhttp.RequestCtx) {
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
	txn, err := h.svc.Restore(ctx, tenant, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txn)
}

func (h *TransactionHandler) Purge(ctx *xhttp.RequestCtx) {
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
	if err := h.svc.Purge(ctx, tenant, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "purged"})
}
