package entity

import "time"

// Category agrupa productos; el nombre es bilingüe.
type Category struct {
	ID          string
	Name        string
	NameAr      string
	Description string
	CreatedAt   time.Time
}
