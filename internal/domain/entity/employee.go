package entity

import "time"

// Employee es un usuario del punto de venta.
type Employee struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt
	Role         string // admin, manager, cashier
	IsActive     bool
	CreatedAt    time.Time
}
