package entity

import "time"

// Roles válidos para User.
const (
	RoleUser    = "user"
	RoleTeknisi = "teknisi"
	RoleAdmin   = "admin"
)

// Tipos de alta (signType).
const (
	SignTypeCredential = "credential"
	SignTypeGoogle     = "google"
)

// IsValidRole indica si r es uno de los roles conocidos.
func IsValidRole(r string) bool {
	return r == RoleUser || r == RoleTeknisi || r == RoleAdmin
}

// User representa una cuenta (cliente, técnico o administrador).
type User struct {
	ID           string // uid
	DisplayName  string
	Email        string
	Role         string // user, teknisi, admin
	SignType     string // credential, google
	PhoneNumber  string
	PhotoURL     string
	PasswordHash string // bcrypt; vacío para cuentas google
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff devuelve true para admin y teknisi.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleTeknisi
}
