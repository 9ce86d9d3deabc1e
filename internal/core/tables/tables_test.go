package tables

import (
	"reflect"
	"testing"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

func TestRegisteredInDependencyOrder(t *testing.T) {
	want := []string{
		"location_areas",
		"tags",
		"users",
		"businesses",
		"offers",
		"loyalty_points",
		"notifications",
	}
	if got := core.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestDefinitions(t *testing.T) {
	for _, def := range core.All() {
		t.Run(def.Key, func(t *testing.T) {
			if def.File == "" {
				t.Error("no default file name")
			}
			if def.Table != def.Key {
				t.Errorf("Table = %q, want %q", def.Table, def.Key)
			}

			fields := map[string]bool{}
			columns := map[string]bool{}
			for _, f := range def.Fields {
				if f.Coerce == nil {
					t.Errorf("field %s has no coercer", f.Field)
				}
				if fields[f.Field] {
					t.Errorf("duplicate field %s", f.Field)
				}
				if columns[f.Column] {
					t.Errorf("duplicate column %s", f.Column)
				}
				fields[f.Field] = true
				columns[f.Column] = true
			}
			for _, f := range []string{"id", "created", "updated"} {
				if !fields[f] {
					t.Errorf("missing field %s", f)
				}
			}

			for _, lk := range def.Lookups {
				if !fields[lk.Source] {
					t.Errorf("lookup source %s is not a field", lk.Source)
				}
				target, ok := core.Get(lk.Table)
				if !ok {
					t.Fatalf("lookup table %s not registered", lk.Table)
				}
				if target.Order >= def.Order {
					t.Errorf("lookup table %s loads after %s", lk.Table, def.Key)
				}
			}
		})
	}
}

func field(t *testing.T, entity, name string) core.Mapping {
	t.Helper()
	def, ok := core.Get(entity)
	if !ok {
		t.Fatalf("entity %s not registered", entity)
	}
	for _, f := range def.Fields {
		if f.Field == name {
			return f
		}
	}
	t.Fatalf("%s has no field %s", entity, name)
	return core.Mapping{}
}

func TestFieldQuirks(t *testing.T) {
	tests := []struct {
		name   string
		entity string
		field  string
		input  string
		want   any
	}{
		{"loyalty points default", "users", "loyalty_points", "", int64(0)},
		{"loyalty tier default", "users", "loyalty_tier", "", defaultLoyaltyTier},
		{"loyalty tier kept", "users", "loyalty_tier", "Gold", "Gold"},
		{"number sold default", "offers", "number_sold", "", int64(0)},
		{"email kept raw", "users", "email", "", ""},
		{"phone empty is null", "users", "phone_no", "", nil},
		{"price is numeric", "offers", "price_discount", "12.50", 12.5},
		{"one per customer", "offers", "one_per_customer", "TRUE", true},
		{"tags type kept raw", "tags", "type", "", ""},
		{"loyalty row name nullable", "loyalty_points", "name", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := field(t, tt.entity, tt.field)
			if got := f.Coerce(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s.%s(%q) = %#v, want %#v", tt.entity, tt.field, tt.input, got, tt.want)
			}
		})
	}
}

func TestSourceColumns(t *testing.T) {
	tests := []struct {
		entity   string
		field    string
		column   string
		optional bool
	}{
		{"notifications", "receiver_id", "RecieverID", false},
		{"users", "selected_tags", "SelectedTags?", true},
		{"offers", "business_name", "Business", false},
		{"businesses", "stripe_account_no", "Stripe Account No.", false},
		{"offers", "one_per_customer", "1perCustomer?", false},
	}

	for _, tt := range tests {
		t.Run(tt.entity+"."+tt.field, func(t *testing.T) {
			f := field(t, tt.entity, tt.field)
			if f.Column != tt.column || f.Optional != tt.optional {
				t.Errorf("Column, Optional = %q, %v; want %q, %v", f.Column, f.Optional, tt.column, tt.optional)
			}
		})
	}
}

func TestOnlySelectedTagsIsOptional(t *testing.T) {
	for _, def := range core.All() {
		for _, f := range def.Fields {
			if f.Optional && !(def.Key == "users" && f.Field == "selected_tags") {
				t.Errorf("%s.%s is optional", def.Key, f.Field)
			}
		}
	}
}

func TestOffersLookup(t *testing.T) {
	def, _ := core.Get("offers")
	want := []core.Lookup{
		{Source: "business_name", Table: "businesses", Match: "name", Target: "id", Into: "business_id"},
	}
	if !reflect.DeepEqual(def.Lookups, want) {
		t.Errorf("Lookups = %+v, want %+v", def.Lookups, want)
	}
}
