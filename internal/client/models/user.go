// Package models defines data types shared by the VoltMate client layers.
package models

// User is the cached profile snapshot of the authenticated account.
// It is refreshed after every successful login or silent renewal.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
