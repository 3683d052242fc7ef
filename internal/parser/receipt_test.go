package parser

import (
	"strings"
	"testing"
)

type fakeSuggester map[string]int64

func (f fakeSuggester) SuggestCategory(description string) (int64, bool) {
	id, ok := f[description]
	return id, ok
}

const sampleReceipt = `
FRESH MART GROCERS
123 High Street
Date: 15/01/2025 Time: 14:02
Till 3 Cashier 12

Milk 2L        2.49
Bread          1.20
Eggs x12      $3.75
Subtotal       7.44
Total          7.44
`

func TestReceiptParse(t *testing.T) {
	p := &ReceiptParser{}
	rec := p.Parse(sampleReceipt)

	if rec.MerchantName != "FRESH MART GROCERS" {
		t.Errorf("merchant = %q, want FRESH MART GROCERS", rec.MerchantName)
	}
	if len(rec.Items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(rec.Items), rec.Items)
	}

	wantDesc := []string{"Milk 2L", "Bread", "Eggs x12"}
	wantAmt := []float64{2.49, 1.20, 3.75}
	for i, item := range rec.Items {
		if item.Description != wantDesc[i] {
			t.Errorf("item %d description = %q, want %q", i, item.Description, wantDesc[i])
		}
		if item.Amount != wantAmt[i] {
			t.Errorf("item %d amount = %f, want %f", i, item.Amount, wantAmt[i])
		}
		if item.Amount < 0 {
			t.Errorf("item %d amount is negative", i)
		}
	}
	if rec.Items[0].ID != "temp-0" || rec.Items[2].ID != "temp-2" {
		t.Errorf("unexpected item ids: %+v", rec.Items)
	}
}

func TestReceiptParseTrailingStray(t *testing.T) {
	p := &ReceiptParser{}
	rec := p.Parse("CORNER SHOP\nChocolate bar 1.50*")
	if len(rec.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(rec.Items))
	}
	if rec.Items[0].Description != "Chocolate bar" || rec.Items[0].Amount != 1.50 {
		t.Errorf("unexpected item: %+v", rec.Items[0])
	}
}

func TestReceiptParseTotalFallback(t *testing.T) {
	p := &ReceiptParser{}
	rec := p.Parse("QUICK FUEL STATION\nThank you for your visit\nTotal: $25.00")
	if len(rec.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(rec.Items))
	}
	item := rec.Items[0]
	if item.Description != "Total" || item.Amount != 25.00 {
		t.Errorf("fallback item = %+v, want Total / 25.00", item)
	}
}

func TestReceiptParseUnreadable(t *testing.T) {
	p := &ReceiptParser{}
	rec := p.Parse("@@@\n###\n")
	if rec.MerchantName != "" || len(rec.Items) != 0 {
		t.Errorf("unreadable receipt should be empty, got %+v", rec)
	}
}

func TestReceiptParseSuggestsCategories(t *testing.T) {
	p := &ReceiptParser{Suggest: fakeSuggester{"Milk 2L": 2}}
	rec := p.Parse("FRESH MART GROCERS\nMilk 2L 2.49\nBatteries 4.99")
	if len(rec.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(rec.Items))
	}
	if rec.Items[0].CategoryID != 2 {
		t.Errorf("known item category = %d, want 2", rec.Items[0].CategoryID)
	}
	if rec.Items[1].CategoryID != 0 {
		t.Errorf("unknown item category = %d, want unset", rec.Items[1].CategoryID)
	}
}

func TestExtractMerchantSkipsBoilerplate(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(`Receipt #4411
15 Jan 2025
VAT No 99887766
Corner Bakery
Item one 3.00`), "\n")
	if got := extractMerchant(lines); got != "Corner Bakery" {
		t.Errorf("merchant = %q, want Corner Bakery", got)
	}
}
