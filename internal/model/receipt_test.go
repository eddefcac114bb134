package model

import "testing"

func TestReceiptParsedItems(t *testing.T) {
	tests := []struct {
		name      string
		items     string
		wantCount int
	}{
		{
			name:      "valid payload",
			items:     `[{"name":"Kahvi","quantity":2,"unit_price":2.5,"total_price":5}]`,
			wantCount: 1,
		},
		{
			name:      "empty payload",
			items:     "",
			wantCount: 0,
		},
		{
			name:      "malformed payload degrades to nil",
			items:     `{"name":"not an array"`,
			wantCount: 0,
		},
		{
			name:      "wrong shape degrades to nil",
			items:     `{"name":"object not array"}`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Receipt{ID: "r-1", Items: tt.items}
			items := r.ParsedItems()
			if len(items) != tt.wantCount {
				t.Errorf("ParsedItems() returned %d items, want %d", len(items), tt.wantCount)
			}
		})
	}
}

func TestReceiptParsedItemsFields(t *testing.T) {
	r := &Receipt{
		ID:    "r-1",
		Items: `[{"name":"Pulla","source_item_id":"i-2","quantity":1,"unit_price":2.5,"total_price":2.5}]`,
	}

	items := r.ParsedItems()
	if len(items) != 1 {
		t.Fatalf("ParsedItems() returned %d items, want 1", len(items))
	}
	if items[0].Name != "Pulla" {
		t.Errorf("Name = %q, want %q", items[0].Name, "Pulla")
	}
	if items[0].SourceItemID != "i-2" {
		t.Errorf("SourceItemID = %q, want %q", items[0].SourceItemID, "i-2")
	}
	if items[0].TotalPrice != 2.5 {
		t.Errorf("TotalPrice = %v, want 2.5", items[0].TotalPrice)
	}
}
