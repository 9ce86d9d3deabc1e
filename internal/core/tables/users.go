package tables

import "github.com/JonMunkholm/pingmigrate/internal/core"

// defaultLoyaltyTier is assigned to users exported without a tier.
const defaultLoyaltyTier = "Ping Local Member"

func init() {
	registerUsers()
}

func registerUsers() {
	core.Register(core.EntityDefinition{
		Key:   "users",
		Label: "Users",
		Table: "users",
		File:  "Users (1).csv",
		Order: orderUsers,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "email", Column: "Email", Coerce: core.Raw},
			{Field: "first_name", Column: "First Name", Coerce: core.Raw},
			{Field: "surname", Column: "Surname", Coerce: core.Raw},
			{Field: "password", Column: "Password", Coerce: core.Raw}, // bcrypt hash, kept as exported
			{Field: "phone_no", Column: "Phone No", Coerce: core.Text},
			{Field: "profile_pic", Column: "Profile Pic", Coerce: core.JSONDoc},
			{Field: "loyalty_points", Column: "LoyaltyPoints", Coerce: core.NumberOr(0)},
			{Field: "is_admin", Column: "IsAdmin?", Coerce: core.Bool},
			{Field: "is_business", Column: "Is Business?", Coerce: core.Bool},
			{Field: "is_test", Column: "Is Test", Coerce: core.Bool},
			{Field: "viewing_date", Column: "Viewing Date", Coerce: core.Timestamp},
			{Field: "last_notify_clear", Column: "Last Notify Clear", Coerce: core.Timestamp},
			{Field: "business", Column: "Business", Coerce: core.Text},
			{Field: "activate_notifications", Column: "Activate Notifications", Coerce: core.Bool},
			{Field: "favourite_business", Column: "Favourite Business", Coerce: core.Text},
			{Field: "verification_code", Column: "Verification Code", Coerce: core.Text},
			{Field: "verified", Column: "Verified?", Coerce: core.Bool},
			{Field: "api_requires_sync", Column: "APIRequiresSync", Coerce: core.Bool},
			{Field: "api_last_sync_date", Column: "APILastSyncDate", Coerce: core.Timestamp},
			{Field: "loyalty_tier", Column: "LoyaltyTier", Coerce: core.TextOr(defaultLoyaltyTier)},
			{Field: "selected_location", Column: "SelectedLocation", Coerce: core.Text},
			{Field: "selected_location_id", Column: "SelectedLocationID", Coerce: core.Number},
			{Field: "selected_tags", Column: "SelectedTags?", Coerce: core.Array, Optional: true},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
	})
}
