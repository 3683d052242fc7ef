package models

import "time"

// TransactionType says which side of the ledger a candidate falls on.
// The sign convention (debit stored as a negative amount) is applied only
// when a candidate is promoted to an Expense.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// CandidateTransaction is a provisional transaction extracted from
// statement or receipt text. It stays editable until imported; Date is
// kept as the raw token so the user can correct ambiguous values before
// normalization.
type CandidateTransaction struct {
	ID              string          `json:"id"` // temp-N, stable for identical input
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"` // magnitude, always >= 0
	Type            TransactionType `json:"type"`
	CategoryID      int64           `json:"categoryId,omitempty"`
	PaymentMethodID int64           `json:"paymentMethodId,omitempty"`
}

// Receipt is the result of parsing OCR text from a single receipt image.
// Items carry only description, amount and an optional category
// suggestion; date and payment method are chosen at save time.
type Receipt struct {
	MerchantName string                 `json:"merchantName"`
	Items        []CandidateTransaction `json:"items"`
}

// Expense is a persisted record. Amount is signed: debits are negative.
type Expense struct {
	ID              int64     `json:"id"`
	Description     string    `json:"description"`
	Amount          float64   `json:"amount"`
	CategoryID      int64     `json:"categoryId"`
	PaymentMethodID int64     `json:"paymentMethodId"`
	UserID          int64     `json:"userId"`
	Date            time.Time `json:"date"`
	ReceiptImage    string    `json:"receiptImage,omitempty"`
	Place           string    `json:"place,omitempty"`
}

// Category and PaymentMethod are reference rows resolved by name when a
// candidate carries no explicit selection.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Settings holds per-install configuration persisted alongside the data.
type Settings struct {
	ID                int64 `json:"id"`
	BillingCycleStart int   `json:"billingCycleStart"`
}
