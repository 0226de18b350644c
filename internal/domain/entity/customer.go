package entity

import "time"

// Customer cliente del taller. Email y número de documento son únicos.
type Customer struct {
	ID             string
	Name           string
	DocumentType   string // CC, NIT, CE, PAS
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
