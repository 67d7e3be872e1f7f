package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const MembersSchema = `
	CREATE TABLE IF NOT EXISTS members (
		id BIGINT PRIMARY KEY,
		account_id BIGINT NOT NULL,
		full_name VARCHAR
	);
`

const BillsSchema = `
	CREATE TABLE IF NOT EXISTS bills (
		id BIGINT PRIMARY KEY,
		account_id BIGINT NOT NULL,
		member_id BIGINT,
		bill_type VARCHAR,
		amount DECIMAL(12, 2),
		paid_amount DECIMAL(12, 2),
		status VARCHAR,
		billed_on DATE NOT NULL
	);
`

const ExpenseCategoriesSchema = `
	CREATE TABLE IF NOT EXISTS expense_categories (
		id BIGINT PRIMARY KEY,
		account_id BIGINT NOT NULL,
		name VARCHAR
	);
`

const ExpensesSchema = `
	CREATE TABLE IF NOT EXISTS expenses (
		id BIGINT PRIMARY KEY,
		account_id BIGINT NOT NULL,
		category_id BIGINT,
		description VARCHAR,
		amount DECIMAL(12, 2),
		status VARCHAR,
		spent_on DATE NOT NULL
	);
`

var bootQueries = []string{
	MembersSchema,
	BillsSchema,
	ExpenseCategoriesSchema,
	ExpensesSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
