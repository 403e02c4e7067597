// Package model defines domain types for finmate profiles, transactions, and badges.
package model

import "github.com/shopspring/decimal"

// Transaction is one logged expense. Date holds the timestamp text exactly as
// recorded so that unparsable values can be reported instead of coerced.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        string
}

// ExpenseCategories are the labels offered when logging an expense.
var ExpenseCategories = []string{
	"Food",
	"Transport",
	"Shopping",
	"Entertainment",
	"Bills",
	"Health",
	"Education",
	"Groceries",
	"Other",
}
