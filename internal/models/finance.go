package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

var AllowedTransactionTypes = map[string]bool{
	TransactionIncome:  true,
	TransactionExpense: true,
}

// Transaction is a single money movement.
type Transaction struct {
	ID        string    `bson:"id" json:"id"`
	Type      string    `bson:"type" json:"type" validate:"required,oneof=income expense"`
	Amount    float64   `bson:"amount" json:"amount" validate:"required,gt=0"`
	Category  string    `bson:"category" json:"category" validate:"required,max=100"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty" validate:"max=500"`
	Date      string    `bson:"date" json:"date" validate:"required,dateymd"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Finance is the per-user document holding all transactions.
type Finance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Transactions []Transaction      `bson:"transactions" json:"transactions" validate:"dive"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CategoryTotal is one slice of the per-category expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DailyTotal is one point of the spending trend.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// FinanceSummary is the derived view over a transaction range.
type FinanceSummary struct {
	Income     float64         `json:"income"`
	Expenses   float64         `json:"expenses"`
	Balance    float64         `json:"balance"`
	Count      int             `json:"count"`
	ByCategory []CategoryTotal `json:"by_category"`
	Trend      []DailyTotal    `json:"trend"`
}
