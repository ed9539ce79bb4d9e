// Package model defines domain types for moneta accounts, budgets, and transactions.
package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// User is the authenticated account holder.
type User struct {
	ID    string
	Name  string
	Email string
}

// Budget is a spending limit for one category over a period.
// Category is not unique — the server allows several budgets per category.
type Budget struct {
	ID       string
	Category string
	Limit    float64 // normalized from the API's "limit" or legacy "amount"
	Spent    float64
	Period   string
}

// Transaction is a single income or expense entry.
// Amount is always positive; the sign is implied by Type.
type Transaction struct {
	ID          string
	Description string
	Amount      float64
	Type        TransactionType
	Category    string
	Date        time.Time
	Notes       string
}

// SpendingAlert is a transient server-computed notice. No identity, no
// persistence — fully replaced on each fetch.
type SpendingAlert struct {
	Message string
}
