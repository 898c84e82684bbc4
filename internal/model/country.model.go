package model

// Country is the per-tenant service price list. Prices are snapshotted onto
// transactions at write time; editing a country never rewrites history.
type Country struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Continent string  `json:"continent,omitempty"`
	TenantID  int64   `json:"model_id"`
}

type CountryCreateRequest struct {
	Name      string
	Price     float64
	Continent string
}

func (p CountryCreateRequest) Validate() error {
	if p.Name == "" {
		return errRequired("name")
	}
	return nil
}
