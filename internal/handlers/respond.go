package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/services"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is treated as a client error, matching the
// flash-and-redirect behavior of the system this API replaced.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	writeError(ctx, errStatus(err), err.Error())
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrCountryNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrBinEntryNotFound),
		errors.Is(err, services.ErrTenantNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return xhttp.StatusNotFound
	case errors.Is(err, services.ErrNameExists),
		errors.Is(err, services.ErrDuplicateAppID),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrNotPaid):
		return xhttp.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return xhttp.StatusUnauthorized
	case errors.Is(err, services.ErrLastAdmin),
		errors.Is(err, services.ErrSelfDelete):
		return xhttp.StatusForbidden
	default:
		return xhttp.StatusBadRequest
	}
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// routeID reads a {name} path segment as an int64.
func routeID(ctx *xhttp.RequestCtx, name string) (int64, error) {
	raw, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(raw, 10, 64)
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
