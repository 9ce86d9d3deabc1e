package tables

import "github.com/JonMunkholm/pingmigrate/internal/core"

func init() {
	registerLoyaltyPoints()
	registerNotifications()
}

func registerLoyaltyPoints() {
	core.Register(core.EntityDefinition{
		Key:   "loyalty_points",
		Label: "Loyalty Points",
		Table: "loyalty_points",
		File:  "LoyaltyPoints.csv",
		Order: orderLoyaltyPoints,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "name", Column: "Name", Coerce: core.Text},
			{Field: "amount", Column: "Amount", Coerce: core.Number},
			{Field: "user_id", Column: "UserID", Coerce: core.Number},
			{Field: "reason", Column: "Reason", Coerce: core.Text},
			{Field: "date_received", Column: "DateReceived", Coerce: core.Timestamp},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
	})
}

func registerNotifications() {
	core.Register(core.EntityDefinition{
		Key:   "notifications",
		Label: "Notifications",
		Table: "notifications",
		File:  "Notifications.csv",
		Order: orderNotifications,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "name", Column: "Name", Coerce: core.Text},
			{Field: "content", Column: "Content", Coerce: core.Text},
			{Field: "read", Column: "Read?", Coerce: core.Bool},
			{Field: "trigger_user_id", Column: "TriggerUserID", Coerce: core.Number},
			{Field: "receiver_id", Column: "RecieverID", Coerce: core.Number}, // sic: upstream header
			{Field: "offer_id", Column: "OfferID", Coerce: core.Number},
			{Field: "notifications_categories", Column: "Notifications Categories", Coerce: core.Text},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
	})
}
