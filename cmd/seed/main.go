// cmd/seed/main.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGSERIAL PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL CHECK (role IN ('owner', 'cashier')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	cost_price    NUMERIC(12,2) NOT NULL DEFAULT 0,
	selling_price NUMERIC(12,2) NOT NULL DEFAULT 0,
	quantity      INTEGER NOT NULL DEFAULT 0,
	min_threshold INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sales (
	id            BIGSERIAL PRIMARY KEY,
	product_id    BIGINT NOT NULL REFERENCES products(id),
	quantity      INTEGER NOT NULL,
	revenue       NUMERIC(12,2) NOT NULL,
	profit        NUMERIC(12,2) NOT NULL,
	cashier_id    BIGINT NOT NULL REFERENCES users(id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales(product_id);

CREATE TABLE IF NOT EXISTS expenses (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	amount      NUMERIC(12,2) NOT NULL,
	category    TEXT NOT NULL DEFAULT 'Other',
	description TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_expenses_created_at ON expenses(created_at DESC);

CREATE TABLE IF NOT EXISTS inventory_movements (
	id            BIGSERIAL PRIMARY KEY,
	product_id    BIGINT NOT NULL REFERENCES products(id),
	movement_type TEXT NOT NULL,
	quantity      INTEGER NOT NULL,
	total_cost    NUMERIC(12,2) NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_movements_created_at ON inventory_movements(created_at DESC);

CREATE TABLE IF NOT EXISTS notifications (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	type       TEXT NOT NULL,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	payload    JSONB NOT NULL DEFAULT '{}',
	is_read    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC);
`

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func initDB(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(c.Context, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Println("schema created")
	return nil
}

func seedDemo(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID, cashierID int64
	if err := tx.QueryRowContext(c.Context, `
		INSERT INTO users (email, role) VALUES ('owner@example.com', 'owner')
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`).Scan(&ownerID); err != nil {
		return fmt.Errorf("failed to seed owner: %w", err)
	}
	if err := tx.QueryRowContext(c.Context, `
		INSERT INTO users (email, role) VALUES ('cashier@example.com', 'cashier')
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`).Scan(&cashierID); err != nil {
		return fmt.Errorf("failed to seed cashier: %w", err)
	}

	products := []struct {
		name         string
		cost, price  float64
		qty, minimum int
	}{
		{"T-Shirt", 100, 150, 40, 10},
		{"Jeans", 350, 500, 25, 8},
		{"Sneakers", 800, 1200, 12, 5},
		{"Cap", 60, 100, 50, 15},
		{"Jacket", 900, 1400, 6, 5},
	}

	for _, p := range products {
		var productID int64
		if err := tx.QueryRowContext(c.Context, `
			INSERT INTO products (name, cost_price, selling_price, quantity, min_threshold)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			p.name, p.cost, p.price, p.qty, p.minimum,
		).Scan(&productID); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}

		// Initial stock purchase for each product
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO inventory_movements (product_id, movement_type, quantity, total_cost)
			VALUES ($1, 'purchase', $2, $3)`,
			productID, p.qty, p.cost*float64(p.qty),
		); err != nil {
			return fmt.Errorf("failed to seed movement for %s: %w", p.name, err)
		}

		// A couple of sales per product so the dashboard has data
		for i := 1; i <= 2; i++ {
			qty := i
			if _, err := tx.ExecContext(c.Context, `
				INSERT INTO sales (product_id, quantity, revenue, profit, cashier_id, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW() - ($6 || ' days')::interval)`,
				productID, qty, p.price*float64(qty), (p.price-p.cost)*float64(qty), cashierID, i,
			); err != nil {
				return fmt.Errorf("failed to seed sale for %s: %w", p.name, err)
			}
			if _, err := tx.ExecContext(c.Context, `
				UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2`,
				qty, productID,
			); err != nil {
				return fmt.Errorf("failed to adjust stock for %s: %w", p.name, err)
			}
		}
	}

	expenses := []struct {
		title    string
		amount   float64
		category string
	}{
		{"Shop rent", 5000, "Rent"},
		{"Cashier salary", 3000, "Salary"},
		{"Electricity", 450, "Utilities"},
		{"Window cleaning", 120, "Other"},
	}
	for _, e := range expenses {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO expenses (title, amount, category) VALUES ($1, $2, $3)`,
			e.title, e.amount, e.category,
		); err != nil {
			return fmt.Errorf("failed to seed expense %s: %w", e.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	log.Printf("demo data seeded (owner id %d, cashier id %d)", ownerID, cashierID)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize and seed the database",
		Commands: []*cli.Command{
			{
				Name:   "init-db",
				Usage:  "Create the database schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: initDB,
			},
			{
				Name:   "demo",
				Usage:  "Insert demo users, products, sales and expenses",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: seedDemo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
