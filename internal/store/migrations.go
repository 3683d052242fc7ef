package store

import "fmt"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		billing_cycle_start INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		category_id INTEGER NOT NULL REFERENCES categories(id),
		payment_method_id INTEGER NOT NULL REFERENCES payment_methods(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		date DATETIME NOT NULL,
		receipt_image TEXT,
		place TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category_id)`,
}

func (s *Store) migrate() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// seed populates an empty database with the default reference data: the
// stock categories and payment methods, one user, and the default billing
// cycle start day. Existing rows are left alone.
func (s *Store) seed() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range []string{"Fuel", "Groceries", "Medical", "Other"} {
		if _, err := tx.Exec(`INSERT INTO categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	for _, name := range []string{"Cash", "Visa", "Mastercard"} {
		if _, err := tx.Exec(`INSERT INTO payment_methods (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed payment methods: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO users (name) VALUES (?)`, "Default User"); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO settings (billing_cycle_start) VALUES (?)`, 20); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	return tx.Commit()
}
