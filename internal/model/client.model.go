package model

// Client holds a running balance inside one tenant. The balance is a
// materialized total of the signed balance_history entries; it is never
// recomputed on read.
type Client struct {
	ID       int64   `json:"id"`
	Name     string  `json:"client_name"`
	Phone    string  `json:"phone_number"`
	Balance  float64 `json:"balance"`
	TenantID int64   `json:"model_id"`
}

type ClientCreateRequest struct {
	Name  string
	Phone string
}

func (p ClientCreateRequest) Validate() error {
	if p.Name == "" {
		return errRequired("client_name")
	}
	if p.Phone == "" {
		return errRequired("phone_number")
	}
	return nil
}
