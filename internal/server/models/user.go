// Package models defines the persisted entities of the recipe service.
package models

import "time"

// User is a registered account. PasswordHash is derived (argon2id) and never
// leaves the server; RecipeIDs is the append-only list of recipes the user
// created, newest last.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RecipeIDs    []string  `json:"recipes"`
	CreatedAt    time.Time `json:"createdAt"`
}
