package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// Drives one full lifecycle against a running instance: login, tenant
// setup, client and country fixtures, then create / pay / list. Meant for a
// quick end-to-end check after a deployment, not for CI.

var (
	baseURL  = flag.String("base", "http://127.0.0.1:8080/api/v1", "API base URL")
	username = flag.String("user", "admin", "login username")
	password = flag.String("pass", "admin", "login password")
)

type client struct {
	http  *fasthttp.Client
	base  string
	token string
}

func (c *client) do(method, path string, body any) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(c.base + path)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(raw)
	}

	if err := c.http.DoTimeout(req, resp, 10*time.Second); err != nil {
		return 0, nil, err
	}
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return resp.StatusCode(), out, nil
}

func (c *client) must(method, path string, body any, wantMax int) []byte {
	code, raw, err := c.do(method, path, body)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("request failed")
	}
	if code >= wantMax {
		log.Fatal().Int("status", code).Str("path", path).Bytes("body", raw).Msg("unexpected status")
	}
	log.Info().Int("status", code).Str("path", path).Msg("ok")
	return raw
}

func main() {
	flag.Parse()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c := &client{http: &fasthttp.Client{}, base: *baseURL}

	// login
	raw := c.must("POST", "/login", map[string]string{"username": *username, "password": *password}, 300)
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &login); err != nil || login.Token == "" {
		log.Fatal().Err(err).Msg("no token in login response")
	}
	c.token = login.Token

	// tenant setup; a conflict means a previous run already created it
	suffix := time.Now().Unix()
	raw = c.must("POST", "/tenants", map[string]string{"name": fmt.Sprintf("smoke-%d", suffix)}, 500)
	var tenant struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &tenant); err != nil || tenant.ID == 0 {
		log.Fatal().Msg("tenant create did not return an id")
	}
	c.must("POST", fmt.Sprintf("/tenants/%d/select", tenant.ID), nil, 300)

	// fixtures
	c.must("POST", "/clients", map[string]string{
		"client_name":  "SmokeClient",
		"phone_number": "000111222",
	}, 300)
	c.must("POST", "/countries", map[string]any{
		"name":  "SmokeLand",
		"price": 100.50,
	}, 300)

	var created struct {
		ID      int64   `json:"id"`
		Amount  float64 `json:"amount"`
		AmountN float64 `json:"amount_n"`
	}
	raw = c.must("POST", "/transactions", map[string]any{
		"client_name":  "SmokeClient",
		"applicant_name": "Smoke Applicant",
		"app_id":       suffix,
		"country_name": "SmokeLand",
		"rate":         "1.5",
		"addition":     "5.0",
	}, 300)
	if err := json.Unmarshal(raw, &created); err != nil {
		log.Fatal().Err(err).Msg("decode transaction")
	}
	log.Info().Float64("amount", created.Amount).Float64("amount_n", created.AmountN).Msg("transaction created")

	// top up and pay
	clientID := findClientID(c, "SmokeClient")
	c.must("POST", fmt.Sprintf("/clients/%d/balance", clientID), map[string]any{
		"amount":      1000.0,
		"type":        "credit",
		"description": "smoke top-up",
	}, 300)
	c.must("POST", fmt.Sprintf("/transactions/%d/pay", created.ID), nil, 300)

	c.must("GET", "/transactions?client=SmokeClient", nil, 300)
	log.Info().Msg("smoke run complete")
}

func findClientID(c *client, name string) int64 {
	raw := c.must("GET", "/clients", nil, 300)
	var clients []struct {
		ID   int64  `json:"id"`
		Name string `json:"client_name"`
	}
	if err := json.Unmarshal(raw, &clients); err != nil {
		log.Fatal().Err(err).Msg("decode clients")
	}
	for _, cl := range clients {
		if cl.Name == name {
			return cl.ID
		}
	}
	log.Fatal().Str("name", name).Msg("client not found")
	return 0
}
