package models

// Team is one entry of a tournament field. It is created when a roster is loaded
// and never changed afterwards.
type Team struct {
	Name   string `json:"name" db:"name"`
	Region string `json:"region" db:"region"`
	Seed   int    `json:"seed" db:"seed"`
}
