package model

// Permission is a capability bit-set checked at the handler boundary.
type Permission uint8

const (
	PermEditClient Permission = 1 << iota
	PermDeleteClient
	PermAddTransaction
	PermEditTransaction
	PermDeleteTransaction
	PermAdmin
)

// Can reports whether p grants the capability. Admin implies everything.
func (p Permission) Can(required Permission) bool {
	if p&PermAdmin != 0 {
		return true
	}
	return p&required != 0
}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email,omitempty"`
	Perms        Permission `json:"permissions"`
}
