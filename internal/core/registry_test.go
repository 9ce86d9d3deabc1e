package core

import "testing"

func TestRegistry(t *testing.T) {
	saved := All()
	Clear()
	t.Cleanup(func() {
		Clear()
		for _, def := range saved {
			Register(def)
		}
	})

	Register(EntityDefinition{Key: "offers", Order: 50})
	Register(EntityDefinition{Key: "businesses", Label: "Businesses", Table: "biz", Order: 40})
	Register(EntityDefinition{Key: "alpha", Order: 50})

	t.Run("all in dependency order", func(t *testing.T) {
		got := Keys()
		want := []string{"businesses", "alpha", "offers"}
		if len(got) != len(want) {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("defaults label and table to key", func(t *testing.T) {
		def, ok := Get("offers")
		if !ok {
			t.Fatal("Get(offers) not found")
		}
		if def.Label != "offers" || def.Table != "offers" {
			t.Errorf("Label, Table = %q, %q, want offers, offers", def.Label, def.Table)
		}
	})

	t.Run("keeps explicit table", func(t *testing.T) {
		def, _ := Get("businesses")
		if def.Table != "biz" {
			t.Errorf("Table = %q, want biz", def.Table)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		if _, ok := Get("nope"); ok {
			t.Error("Get(nope) found")
		}
	})

	t.Run("count", func(t *testing.T) {
		if Count() != 3 {
			t.Errorf("Count() = %d, want 3", Count())
		}
	})

	t.Run("duplicate panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Register() of duplicate key did not panic")
			}
		}()
		Register(EntityDefinition{Key: "offers"})
	})
}

func TestRequiredColumns(t *testing.T) {
	def := EntityDefinition{
		Fields: []Mapping{
			{Field: "id", Column: "ID", Coerce: Number},
			{Field: "selected_tags", Column: "SelectedTags?", Coerce: Array, Optional: true},
			{Field: "email", Column: "Email", Coerce: Raw},
		},
	}

	got := def.RequiredColumns()
	if len(got) != 2 || got[0] != "ID" || got[1] != "Email" {
		t.Errorf("RequiredColumns() = %v, want [ID Email]", got)
	}
}

func TestColumns(t *testing.T) {
	got := Columns([]Record{
		{"name": "a", "id": 1},
		{"id": 2, "business_id": 7},
	})
	want := []string{"business_id", "id", "name"}
	if len(got) != len(want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
