package tables

import "github.com/JonMunkholm/pingmigrate/internal/core"

func init() {
	registerLocationAreas()
	registerTags()
}

func registerLocationAreas() {
	core.Register(core.EntityDefinition{
		Key:   "location_areas",
		Label: "Location Areas",
		Table: "location_areas",
		File:  "Location_Area (1).csv",
		Order: orderLocationAreas,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "name", Column: "Name", Coerce: core.Raw},
			{Field: "featured_image", Column: "Featured Image", Coerce: core.JSONDoc},
			{Field: "description", Column: "Description", Coerce: core.Text},
			{Field: "location", Column: "Location", Coerce: core.Text},
			{Field: "map_location", Column: "MapLocation", Coerce: core.Text},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
	})
}

func registerTags() {
	core.Register(core.EntityDefinition{
		Key:   "tags",
		Label: "Tags",
		Table: "tags",
		File:  "Tags (2).csv",
		Order: orderTags,
		Fields: []core.Mapping{
			{Field: "id", Column: "ID", Coerce: core.Number},
			{Field: "name", Column: "Name", Coerce: core.Raw},
			{Field: "type", Column: "Type", Coerce: core.Raw},
			{Field: "created", Column: "Created", Coerce: core.Timestamp},
			{Field: "updated", Column: "Updated", Coerce: core.Timestamp},
		},
	})
}
