package model

import "time"

// Vote is a single accepted ballot
type Vote struct {
	ID          string    `json:"id"`
	HouseNumber int       `json:"house_number"`
	Option      Option    `json:"option"`
	Timestamp   time.Time `json:"timestamp"`
}
