package tables

import "github.com/JonMunkholm/pingmigrate/internal/core"

func init() {
	registerOffers()
}

// registerOffers declares the offers export. Offers carry the business name
// denormalized; business_id is resolved by exact name match against the
// businesses table loaded earlier in the run. Business names are assumed
// unique: with duplicates, whichever row the store returns first wins.
func registerOffers() {
	core.Register(core.EntityDefinition{
		Key:   "offers",
		Label: "Offers",
		Table: "offers",
		File:  "Offers (2).csv",
		Order: orderOffers,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "name", Column: "Name", Coerce: core.Raw},
			{Field: "summary", Column: "Summary", Coerce: core.Text},
			{Field: "full_description", Column: "Full Description", Coerce: core.Text},
			{Field: "special_notes", Column: "Special Notes", Coerce: core.Text},
			{Field: "offer_type", Column: "Offer Type", Coerce: core.Text},
			{Field: "requires_booking", Column: "Requires Booking", Coerce: core.Bool},
			{Field: "booking_type", Column: "Booking Type", Coerce: core.Text},
			{Field: "one_per_customer", Column: "1perCustomer?", Coerce: core.Bool},
			{Field: "price_discount", Column: "Price / Discount", Coerce: core.Number},
			{Field: "unit_of_measurement", Column: "Unit of Measurement", Coerce: core.Text},
			{Field: "quantity", Column: "Quantity", Coerce: core.Number},
			{Field: "number_sold", Column: "Number Sold", Coerce: core.NumberOr(0)},
			{Field: "quantity_item", Column: "Quantity Item?", Coerce: core.Bool},
			{Field: "status", Column: "Status", Coerce: core.Text},
			{Field: "finish_time", Column: "FinishTime", Coerce: core.Timestamp},
			{Field: "booking_url", Column: "BookingURL", Coerce: core.Text},
			{Field: "business_name", Column: "Business", Coerce: core.Text},
			{Field: "featured_image", Column: "Featured Image", Coerce: core.JSONDoc},
			{Field: "category", Column: "Category", Coerce: core.Text},
			{Field: "customer_bill_input", Column: "Customer Bill Input", Coerce: core.Bool},
			{Field: "start_date", Column: "Start Date", Coerce: core.Timestamp},
			{Field: "end_date", Column: "End Date", Coerce: core.Timestamp},
			{Field: "created_by_id", Column: "CreatedbyID", Coerce: core.Number},
			{Field: "created_by_name", Column: "CreatedbyName", Coerce: core.Text},
			{Field: "signed_off_by_name", Column: "SignedOffByName", Coerce: core.Text},
			{Field: "signed_off_by_id", Column: "SignedOffByID", Coerce: core.Number},
			{Field: "rejection_reason", Column: "RejectionReason", Coerce: core.Text},
			{Field: "business_policy", Column: "Business Policy", Coerce: core.Text},
			{Field: "policy_notes", Column: "PolicyNotes", Coerce: core.Text},
			{Field: "pricing_complete", Column: "PricingComplete?", Coerce: core.Bool},
			{Field: "api_requires_sync", Column: "APIRequiresSync", Coerce: core.Bool},
			{Field: "api_last_sync_date", Column: "APILastSyncDate", Coerce: core.Timestamp},
			{Field: "business_location", Column: "Business Location", Coerce: core.Text},
			{Field: "location_area", Column: "Location Area", Coerce: core.Text},
			{Field: "change_button_text", Column: "Change Button Text", Coerce: core.Text},
			{Field: "custom_feed_text", Column: "CustomFeedText", Coerce: core.Text},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
		Lookups: []core.Lookup{
			{Source: "business_name", Table: "businesses", Match: "name", Target: "id", Into: "business_id"},
		},
	})
}
