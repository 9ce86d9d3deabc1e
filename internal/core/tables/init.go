// Package tables registers the Adalo export entity definitions with the
// core registry. Import this package to ensure all entities are registered.
//
// Column names are the exact export headers, including upstream
// misspellings such as "RecieverID"; destination field names may correct them.
package tables

// Dependency order. Later entities may look up earlier ones.
const (
	orderLocationAreas = (iota + 1) * 10
	orderTags
	orderUsers
	orderBusinesses
	orderOffers
	orderLoyaltyPoints
	orderNotifications
)
