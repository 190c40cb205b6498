package model

// Pharmacy is a registry entry of the network.
type Pharmacy struct {
	ID      string
	BaseURL string
}
