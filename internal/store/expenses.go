package store

import (
	"database/sql"
	"fmt"

	"github.com/superm123/SnapSpend/internal/billing"
	"github.com/superm123/SnapSpend/internal/models"
)

// InsertExpenses persists a batch in one transaction. Either every row is
// written or none; a failure leaves the database untouched so the caller
// can retain the batch for retry.
func (s *Store) InsertExpenses(batch []models.Expense) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO expenses
		(description, amount, category_id, payment_method_id, user_id, date, receipt_image, place)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.Exec(e.Description, e.Amount, e.CategoryID, e.PaymentMethodID,
			e.UserID, e.Date.UTC(), nullable(e.ReceiptImage), nullable(e.Place)); err != nil {
			return fmt.Errorf("insert expense %q: %w", e.Description, err)
		}
	}

	return tx.Commit()
}

// ExpensesInRange returns a user's expenses with date inside the window,
// inclusive on both ends, ordered by date. Dates are stored and compared
// in UTC: sqlite compares the bound timestamps as text, so a window
// computed in a local zone must not mix offsets with the stored rows.
func (s *Store) ExpensesInRange(w billing.Window, userID int64) ([]models.Expense, error) {
	rows, err := s.db.Query(`SELECT id, description, amount, category_id, payment_method_id,
			user_id, date, COALESCE(receipt_image, ''), COALESCE(place, '')
		FROM expenses
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date`, userID, w.Start.UTC(), w.End.UTC())
	if err != nil {
		return nil, fmt.Errorf("query expenses in range: %w", err)
	}
	defer rows.Close()

	var out []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.CategoryID,
			&e.PaymentMethodID, &e.UserID, &e.Date, &e.ReceiptImage, &e.Place); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Totals are keyed by reference-row name for display.
type Totals map[string]float64

// SummarizeByCategory sums signed amounts per category inside the window.
func (s *Store) SummarizeByCategory(w billing.Window, userID int64) (Totals, error) {
	return s.summarize(w, userID, `SELECT c.name, SUM(e.amount)
		FROM expenses e JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = ? AND e.date BETWEEN ? AND ?
		GROUP BY c.name`)
}

// SummarizeByPaymentMethod sums signed amounts per payment method.
func (s *Store) SummarizeByPaymentMethod(w billing.Window, userID int64) (Totals, error) {
	return s.summarize(w, userID, `SELECT p.name, SUM(e.amount)
		FROM expenses e JOIN payment_methods p ON p.id = e.payment_method_id
		WHERE e.user_id = ? AND e.date BETWEEN ? AND ?
		GROUP BY p.name`)
}

func (s *Store) summarize(w billing.Window, userID int64, query string) (Totals, error) {
	rows, err := s.db.Query(query, userID, w.Start.UTC(), w.End.UTC())
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	defer rows.Close()

	totals := Totals{}
	for rows.Next() {
		var name string
		var sum float64
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, err
		}
		totals[name] = sum
	}
	return totals, rows.Err()
}

// SuggestCategory reuses the category of the most recent expense whose
// description equals the given one, ignoring case. Implements
// parser.CategorySuggester.
func (s *Store) SuggestCategory(description string) (int64, bool) {
	var id int64
	err := s.db.QueryRow(`SELECT category_id FROM expenses
		WHERE description = ? COLLATE NOCASE
		ORDER BY id DESC LIMIT 1`, description).Scan(&id)
	if err != nil {
		return 0, false
	}
	return id, true
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
