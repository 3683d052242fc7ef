package importer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/superm123/SnapSpend/internal/models"
)

type fakeRepo struct {
	categories map[string]int64
	payments   map[string]int64
	inserted   [][]models.Expense
	insertErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[string]int64{"Fuel": 1, "Groceries": 2, "Medical": 3, "Other": 4},
		payments:   map[string]int64{"Cash": 1, "Visa": 2, "Mastercard": 3},
	}
}

func (r *fakeRepo) CategoryIDByName(name string) (int64, error) {
	if id, ok := r.categories[name]; ok {
		return id, nil
	}
	return 0, errors.New("not found")
}

func (r *fakeRepo) PaymentMethodIDByName(name string) (int64, error) {
	if id, ok := r.payments[name]; ok {
		return id, nil
	}
	return 0, errors.New("not found")
}

func (r *fakeRepo) InsertExpenses(batch []models.Expense) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, batch)
	return nil
}

func testImporter(repo *fakeRepo) *Importer {
	im := New(repo, zap.NewNop())
	im.Now = func() time.Time {
		return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return im
}

func TestImportStatement(t *testing.T) {
	repo := newFakeRepo()
	im := testImporter(repo)

	cands := []models.CandidateTransaction{
		{ID: "temp-0", Date: "15/01/2025", Description: "Grocery Store",
			Amount: 123.45, Type: models.Debit, CategoryID: 2},
		{ID: "temp-1", Date: "16/01/2025", Description: "Refund",
			Amount: 20.00, Type: models.Credit},
	}

	res, err := im.ImportStatement(cands, 1)
	if err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	if res.Imported != 2 || len(res.Skipped) != 0 {
		t.Fatalf("result = %+v, want 2 imported, 0 skipped", res)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("got %d insert calls, want 1", len(repo.inserted))
	}

	batch := repo.inserted[0]
	if batch[0].Amount != -123.45 {
		t.Errorf("debit amount = %f, want -123.45", batch[0].Amount)
	}
	if batch[1].Amount != 20.00 {
		t.Errorf("credit amount = %f, want 20.00", batch[1].Amount)
	}
	if got := batch[0].Date; !got.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2025-01-15", got)
	}
	if batch[0].CategoryID != 2 {
		t.Errorf("explicit category = %d, want 2", batch[0].CategoryID)
	}
	// Unset references fall back to Other and Cash.
	if batch[1].CategoryID != 4 || batch[1].PaymentMethodID != 1 {
		t.Errorf("defaults = %d/%d, want 4/1", batch[1].CategoryID, batch[1].PaymentMethodID)
	}
	if batch[0].UserID != 1 {
		t.Errorf("user id = %d, want 1", batch[0].UserID)
	}
}

func TestResultEncodesEmptySkippedAsList(t *testing.T) {
	repo := newFakeRepo()
	im := testImporter(repo)

	res, err := im.ImportStatement([]models.CandidateTransaction{
		{ID: "temp-0", Date: "15/01/2025", Description: "Good", Amount: 10, Type: models.Debit},
	}, 1)
	if err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if !strings.Contains(string(raw), `"skipped":[]`) {
		t.Errorf("skipped should encode as [], got %s", raw)
	}

	recRes, err := im.ImportReceipt(models.Receipt{
		MerchantName: "Shop",
		Items:        []models.CandidateTransaction{{ID: "temp-0", Description: "Milk", Amount: 1}},
	}, 1, "")
	if err != nil {
		t.Fatalf("ImportReceipt: %v", err)
	}
	if recRes.Skipped == nil {
		t.Error("receipt result skipped list is nil")
	}
}

func TestImportStatementSkipsBadDates(t *testing.T) {
	repo := newFakeRepo()
	im := testImporter(repo)

	cands := []models.CandidateTransaction{
		{ID: "temp-0", Date: "15/01/2025", Description: "Good", Amount: 10, Type: models.Debit},
		{ID: "temp-1", Date: "99/99/9999", Description: "Bad", Amount: 10, Type: models.Debit},
	}

	res, err := im.ImportStatement(cands, 1)
	if err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	if res.Imported != 1 {
		t.Errorf("imported = %d, want 1", res.Imported)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %+v, want one entry", res.Skipped)
	}
	sk := res.Skipped[0]
	if sk.ID != "temp-1" || !strings.Contains(sk.Reason, "99/99/9999") {
		t.Errorf("skipped entry = %+v", sk)
	}
}

func TestImportStatementYearlessDates(t *testing.T) {
	repo := newFakeRepo()
	im := testImporter(repo)

	cands := []models.CandidateTransaction{
		{ID: "temp-0", Date: "4 Dec", Description: "Cafe", Amount: 5, Type: models.Debit},
	}
	res, err := im.ImportStatement(cands, 1)
	if err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	if res.Imported != 1 {
		t.Fatalf("result = %+v", res)
	}
	// The clock's year fills in for tokens without one.
	got := repo.inserted[0][0].Date
	if want := time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}
}

func TestImportStatementInsertFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("disk full")
	im := testImporter(repo)

	cands := []models.CandidateTransaction{
		{ID: "temp-0", Date: "15/01/2025", Description: "Good", Amount: 10, Type: models.Debit},
	}
	res, err := im.ImportStatement(cands, 1)
	if err == nil {
		t.Fatal("ImportStatement should surface insert failure")
	}
	if res.Imported != 0 {
		t.Errorf("imported = %d after failed insert, want 0", res.Imported)
	}
}

func TestImportReceipt(t *testing.T) {
	repo := newFakeRepo()
	im := testImporter(repo)

	rec := models.Receipt{
		MerchantName: "Fresh Mart",
		Items: []models.CandidateTransaction{
			{ID: "temp-0", Description: "Milk 2L", Amount: 2.49, CategoryID: 2},
			{ID: "temp-1", Description: "Batteries", Amount: 4.99},
		},
	}

	res, err := im.ImportReceipt(rec, 1, "uploads/receipt-1.png")
	if err != nil {
		t.Fatalf("ImportReceipt: %v", err)
	}
	if res.Imported != 2 {
		t.Fatalf("imported = %d, want 2", res.Imported)
	}

	batch := repo.inserted[0]
	for i, e := range batch {
		if e.Amount < 0 {
			t.Errorf("item %d amount = %f, receipt amounts stay positive", i, e.Amount)
		}
		if e.Place != "Fresh Mart" {
			t.Errorf("item %d place = %q, want Fresh Mart", i, e.Place)
		}
		if e.ReceiptImage != "uploads/receipt-1.png" {
			t.Errorf("item %d receipt image = %q", i, e.ReceiptImage)
		}
		if !e.Date.Equal(im.Now()) {
			t.Errorf("item %d date = %v, want scan time", i, e.Date)
		}
	}
	if batch[0].CategoryID != 2 {
		t.Errorf("suggested category = %d, want 2", batch[0].CategoryID)
	}
	if batch[1].CategoryID != 4 {
		t.Errorf("default category = %d, want 4", batch[1].CategoryID)
	}
}

func TestResolveDefaultsMissingRow(t *testing.T) {
	repo := newFakeRepo()
	delete(repo.categories, "Other")
	if _, err := ResolveDefaults(repo); err == nil {
		t.Fatal("ResolveDefaults should fail when the default category is missing")
	}
}
