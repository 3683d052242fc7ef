package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/superm123/SnapSpend/internal/models"
)

// ErrNotFound is returned when a reference row does not exist.
var ErrNotFound = errors.New("not found")

// GetCategories returns all categories in insertion order.
func (s *Store) GetCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetPaymentMethods returns all payment methods in insertion order.
func (s *Store) GetPaymentMethods() ([]models.PaymentMethod, error) {
	rows, err := s.db.Query(`SELECT id, name FROM payment_methods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query payment methods: %w", err)
	}
	defer rows.Close()

	var out []models.PaymentMethod
	for rows.Next() {
		var p models.PaymentMethod
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CategoryIDByName resolves a category by exact name.
func (s *Store) CategoryIDByName(name string) (int64, error) {
	return s.idByName(`SELECT id FROM categories WHERE name = ?`, name)
}

// PaymentMethodIDByName resolves a payment method by exact name.
func (s *Store) PaymentMethodIDByName(name string) (int64, error) {
	return s.idByName(`SELECT id FROM payment_methods WHERE name = ?`, name)
}

func (s *Store) idByName(query, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FirstUser returns the first user row, the implicit current user for a
// single-profile install.
func (s *Store) FirstUser() (models.User, error) {
	var u models.User
	err := s.db.QueryRow(`SELECT id, name FROM users ORDER BY id LIMIT 1`).Scan(&u.ID, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// GetSettings returns the settings row.
func (s *Store) GetSettings() (models.Settings, error) {
	var st models.Settings
	err := s.db.QueryRow(`SELECT id, billing_cycle_start FROM settings ORDER BY id LIMIT 1`).
		Scan(&st.ID, &st.BillingCycleStart)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, ErrNotFound
	}
	return st, err
}

// UpdateBillingCycleStart stores a new cycle start day.
func (s *Store) UpdateBillingCycleStart(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("billing cycle start day must be 1..31, got %d", day)
	}
	_, err := s.db.Exec(`UPDATE settings SET billing_cycle_start = ?`, day)
	return err
}
