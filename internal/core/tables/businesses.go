package tables

import "github.com/JonMunkholm/pingmigrate/internal/core"

func init() {
	registerBusinesses()
}

func registerBusinesses() {
	core.Register(core.EntityDefinition{
		Key:   "businesses",
		Label: "Businesses",
		Table: "businesses",
		File:  "Businesses (1).csv",
		Order: orderBusinesses,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "name", Column: "Name", Coerce: core.Raw},
			{Field: "featured_image", Column: "Featured Image", Coerce: core.JSONDoc},
			{Field: "email", Column: "Email", Coerce: core.Text},
			{Field: "description", Column: "Description", Coerce: core.Text},
			{Field: "description_summary", Column: "DescriptionSummary", Coerce: core.Text},
			{Field: "location", Column: "Location", Coerce: core.Text},
			{Field: "phone_number", Column: "Phone Number", Coerce: core.Text},
			{Field: "opening_times", Column: "Opening Times", Coerce: core.Text},
			{Field: "available_promotion_types", Column: "AvailablePromotionTypes", Coerce: core.Text},
			{Field: "is_featured", Column: "IsFeatured?", Coerce: core.Bool},
			{Field: "is_signed_off", Column: "IsSignedOff?", Coerce: core.Bool},
			{Field: "location_area", Column: "Location Area", Coerce: core.Text},
			{Field: "primary_user", Column: "Primary User", Coerce: core.Text},
			{Field: "owner_id", Column: "OwnerID", Coerce: core.Number},
			{Field: "category", Column: "Category", Coerce: core.Text},
			{Field: "sub_categories", Column: "Sub Categories", Coerce: core.Text},
			{Field: "stripe_account_no", Column: "Stripe Account No.", Coerce: core.Text},
			{Field: "lead_rate", Column: "LeadRate", Coerce: core.Number},
			{Field: "cut_percent", Column: "CutPercent", Coerce: core.Number},
			{Field: "api_requires_sync", Column: "APIRequiresSync", Coerce: core.Bool},
			{Field: "api_last_sync_date", Column: "APILastSyncDate", Coerce: core.Timestamp},
			{Field: "currently_trading", Column: "Currently Trading", Coerce: core.Bool},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
	})
}
