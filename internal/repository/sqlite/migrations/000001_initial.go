package migrations

import "database/sql"

func init() {
	Register(1, "initial_schema", Up_000001_initial_schema)
}

// Up_000001_initial_schema creates the core tables. The default category
// set is installed by the category service on startup.
func Up_000001_initial_schema(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			contact_name TEXT,
			email TEXT,
			phone TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			address TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id INTEGER NOT NULL,
			project_id INTEGER,
			description TEXT NOT NULL,
			category_id TEXT NOT NULL DEFAULT 'dev',
			entry_date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			duration REAL NOT NULL DEFAULT 0,
			rate REAL NOT NULL DEFAULT 0,
			billable INTEGER NOT NULL DEFAULT 1,
			invoiced INTEGER NOT NULL DEFAULT 0,
			invoice_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_number TEXT NOT NULL UNIQUE,
			client_id INTEGER NOT NULL,
			issue_date TEXT NOT NULL,
			due_date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			subtotal REAL NOT NULL DEFAULT 0,
			tax REAL NOT NULL DEFAULT 0,
			total REAL NOT NULL DEFAULT 0,
			notes TEXT,
			payment_terms TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_id INTEGER NOT NULL,
			description TEXT NOT NULL,
			quantity REAL NOT NULL DEFAULT 0,
			rate REAL NOT NULL DEFAULT 0,
			amount REAL NOT NULL DEFAULT 0,
			time_entry_ids TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS active_timer (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			client_id INTEGER,
			project_id INTEGER,
			description TEXT NOT NULL DEFAULT '',
			category_id TEXT NOT NULL DEFAULT 'dev',
			started_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_client ON time_entries(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_invoice ON time_entries(invoice_id)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
