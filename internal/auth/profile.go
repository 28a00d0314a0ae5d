package auth

import "shynora-backend/internal/models"

// NormalizeAddresses fills in address defaults and enforces the single-
// default invariant: when several entries are flagged default, only the
// first (by list order) keeps the flag.
func NormalizeAddresses(addresses []models.Address) []models.Address {
	normalized := make([]models.Address, 0, len(addresses))
	foundDefault := false
	for _, addr := range addresses {
		if addr.Type == "" {
			addr.Type = "home"
		}
		if addr.Country == "" {
			addr.Country = "India"
		}
		if addr.IsDefault {
			if foundDefault {
				addr.IsDefault = false
			} else {
				foundDefault = true
			}
		}
		normalized = append(normalized, addr)
	}
	return normalized
}
