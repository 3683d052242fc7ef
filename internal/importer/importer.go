// Package importer promotes reviewed candidate transactions into
// persisted expenses: dates are normalized, missing references fall back
// to the named defaults, the debit sign convention collapses into the
// stored amount, and the batch is written atomically. Invalid candidates
// are never persisted; they are reported back for user correction.
package importer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/superm123/SnapSpend/internal/models"
	"github.com/superm123/SnapSpend/internal/parser"
)

// Named defaults applied when a candidate carries no explicit selection.
// Centralized here so the string coupling to seeded rows stays in one
// place.
const (
	DefaultCategoryName      = "Other"
	DefaultPaymentMethodName = "Cash"
)

// Repository is the slice of the persistence layer the importer needs.
type Repository interface {
	CategoryIDByName(name string) (int64, error)
	PaymentMethodIDByName(name string) (int64, error)
	InsertExpenses(batch []models.Expense) error
}

// Defaults holds the resolved ids of the named default rows.
type Defaults struct {
	CategoryID      int64
	PaymentMethodID int64
}

// ResolveDefaults looks up the default category and payment method.
func ResolveDefaults(repo Repository) (Defaults, error) {
	cat, err := repo.CategoryIDByName(DefaultCategoryName)
	if err != nil {
		return Defaults{}, fmt.Errorf("resolve default category: %w", err)
	}
	pay, err := repo.PaymentMethodIDByName(DefaultPaymentMethodName)
	if err != nil {
		return Defaults{}, fmt.Errorf("resolve default payment method: %w", err)
	}
	return Defaults{CategoryID: cat, PaymentMethodID: pay}, nil
}

// Skipped describes a candidate left out of the batch, with enough
// context for the UI to highlight the row.
type Skipped struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Result is the partial-success summary of one import call.
type Result struct {
	Imported int       `json:"imported"`
	Skipped  []Skipped `json:"skipped"`
}

// Importer wires the repository and clock together.
type Importer struct {
	Repo Repository
	Log  *zap.Logger
	Now  func() time.Time
}

func New(repo Repository, log *zap.Logger) *Importer {
	return &Importer{Repo: repo, Log: log, Now: time.Now}
}

// ImportStatement validates and persists statement candidates for a user.
// Candidates whose date token cannot be normalized are skipped and
// reported; the rest are written in a single transaction. If that write
// fails the whole batch is reported as failed and nothing is imported.
func (im *Importer) ImportStatement(cands []models.CandidateTransaction, userID int64) (Result, error) {
	defaults, err := ResolveDefaults(im.Repo)
	if err != nil {
		return Result{}, err
	}

	now := im.Now()
	// Skipped always encodes as a list, never null; clients iterate it
	// without a nil check.
	res := Result{Skipped: []Skipped{}}
	var batch []models.Expense

	for _, c := range cands {
		date, ok := parser.NormalizeDate(c.Date, now.Year())
		if !ok {
			res.Skipped = append(res.Skipped, Skipped{
				ID:     c.ID,
				Reason: fmt.Sprintf("unrecognized date %q", c.Date),
			})
			continue
		}

		amount := c.Amount
		if c.Type == models.Debit {
			amount = -amount
		}

		batch = append(batch, models.Expense{
			Description:     c.Description,
			Amount:          amount,
			CategoryID:      orDefault(c.CategoryID, defaults.CategoryID),
			PaymentMethodID: orDefault(c.PaymentMethodID, defaults.PaymentMethodID),
			UserID:          userID,
			Date:            date,
		})
	}

	if err := im.Repo.InsertExpenses(batch); err != nil {
		return Result{Skipped: res.Skipped}, fmt.Errorf("bulk insert: %w", err)
	}
	res.Imported = len(batch)

	im.Log.Info("statement import finished",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// ImportReceipt persists receipt line items. Items carry no date or type:
// they are stamped with the scan time and stored with their positive
// amount, and the merchant name becomes the expense place.
func (im *Importer) ImportReceipt(rec models.Receipt, userID int64, receiptImage string) (Result, error) {
	defaults, err := ResolveDefaults(im.Repo)
	if err != nil {
		return Result{}, err
	}

	var batch []models.Expense
	for _, item := range rec.Items {
		batch = append(batch, models.Expense{
			Description:     item.Description,
			Amount:          item.Amount,
			CategoryID:      orDefault(item.CategoryID, defaults.CategoryID),
			PaymentMethodID: orDefault(item.PaymentMethodID, defaults.PaymentMethodID),
			UserID:          userID,
			Date:            im.Now(),
			ReceiptImage:    receiptImage,
			Place:           rec.MerchantName,
		})
	}

	if err := im.Repo.InsertExpenses(batch); err != nil {
		return Result{}, fmt.Errorf("bulk insert: %w", err)
	}

	im.Log.Info("receipt import finished",
		zap.String("merchant", rec.MerchantName),
		zap.Int("imported", len(batch)))
	return Result{Imported: len(batch), Skipped: []Skipped{}}, nil
}

func orDefault(id, fallback int64) int64 {
	if id != 0 {
		return id
	}
	return fallback
}
