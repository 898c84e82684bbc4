package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
)

type CountryService interface {
	Create(ctx context.Context, tenantID int64, p model.CountryCreateRequest) (*model.Country, error)
	Update(ctx context.Context, tenantID, id int64, p model.CountryCreateRequest) error
	Delete(ctx context.Context, tenantID, id int64) error
	List(ctx context.Context, tenantID int64) ([]*model.Country, error)
	ResolvePrice(ctx context.Context, tenantID int64, countryName string) (float64, error)
}

type CountryHandler struct {
	svc CountryService
}

func NewCountryHandler(countryService CountryService) *CountryHandler {
	return &CountryHandler{
		svc: countryService,
	}
}

func RegisterCountryRoutes(e *router.Group, auth *AuthHandler, h *CountryHandler) {
	e.GET("/countries", auth.Require(0, h.List))
	e.GET("/countries/price", auth.Require(0, h.Price))
	e.POST("/countries", auth.Require(model.PermAdmin, h.Create))
	e.PUT("/countries/{id}", auth.Require(model.PermAdmin, h.Update))
	e.DELETE("/countries/{id}", auth.Require(model.PermAdmin, h.Delete))
}

type countryRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Continent string  `json:"continent"`
}

func (h *CountryHandler) Create(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	var req countryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	country, err := h.svc.Create(ctx, tenant, model.CountryCreateRequest{
		Name:      req.Name,
		Price:     req.Price,
		Continent: req.Continent,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, country)
}

func (h *CountryHandler) List(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	countries, err := h.svc.List(ctx, tenant)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, countries)
}

// Price returns the current charge base for a country by name, the figure
// Create snapshots into new transactions.
func (h *CountryHandler) Price(ctx *xhttp.RequestCtx) {
	tenant, err := tenantID(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	name := query(ctx, "name")
	if name == "" {
		writeError(ctx, xhttp.StatusBadRequest, "name is required")
		return
	}
	price, err := h.svc.ResolvePrice(ctx, tenant, name)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"name": name, "price": price})
}

func (h *CountryHandler) Update(ctx *xhttp.RequestCtx) {
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
	var req countryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	err = h.svc.Update(ctx, tenant, id, model.CountryCreateRequest{
		Name:      req.Name,
		Price:     req.Price,
		Continent: req.Continent,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "updated"})
}

func (h *CountryHandler) Delete(ctx *xhttp.RequestCtx) {
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
