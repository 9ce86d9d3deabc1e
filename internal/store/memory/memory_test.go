package memory

import (
	"context"
	"reflect"
	"testing"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

func TestStore_InsertSelect(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.Insert(ctx, "businesses", []core.Record{
		{"id": int64(1), "name": "Bike Shed"},
		{"id": int64(2), "name": "Corner Cafe"},
		{"id": int64(3), "name": "Bike Shed"},
		{"id": int64(4), "name": nil},
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	tests := []struct {
		name string
		q    core.Query
		want []core.Record
	}{
		{
			name: "projection with limit",
			q:    core.Eq("name", "Bike Shed", "id").WithLimit(1),
			want: []core.Record{{"id": int64(1)}},
		},
		{
			name: "all matches",
			q:    core.Eq("name", "Bike Shed", "id"),
			want: []core.Record{{"id": int64(1)}, {"id": int64(3)}},
		},
		{
			name: "no match",
			q:    core.Eq("name", "Nobody", "id"),
			want: nil,
		},
		{
			name: "numeric value matches by printed form",
			q:    core.Eq("id", "2", "name"),
			want: []core.Record{{"name": "Corner Cafe"}},
		},
		{
			name: "null never matches",
			q:    core.Eq("name", "<nil>", "id"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Select(ctx, "businesses", tt.q)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Select() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_InsertCopiesRecords(t *testing.T) {
	s := New()
	rec := core.Record{"id": int64(1)}
	if err := s.Insert(context.Background(), "tags", []core.Record{rec}); err != nil {
		t.Fatal(err)
	}

	rec["id"] = int64(99)
	if got := s.Rows("tags")[0]["id"]; got != int64(1) {
		t.Errorf("stored id = %v, want 1", got)
	}
}

func TestStore_Tables(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Insert(ctx, "users", []core.Record{{"id": int64(1)}})
	_ = s.Insert(ctx, "empty", nil)
	_ = s.Insert(ctx, "tags", []core.Record{{"id": int64(1)}})

	if got := s.Tables(); !reflect.DeepEqual(got, []string{"tags", "users"}) {
		t.Errorf("Tables() = %v", got)
	}
}

func TestStore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := New().Insert(ctx, "tags", []core.Record{{"id": 1}}); err == nil {
		t.Error("Insert() on cancelled context succeeded")
	}
}
