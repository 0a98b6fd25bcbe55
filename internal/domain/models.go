package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"

	// MaxStock is the largest stock count the admin panel accepts.
	MaxStock = 999999
)

type Product struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	Image       string          `json:"image,omitempty"` // data-URL blob, optional
}

// UnmarshalJSON keeps the legacy default: a product with no "active"
// field is active.
func (p *Product) UnmarshalJSON(b []byte) error {
	type alias Product
	aux := struct {
		*alias
		Active *bool `json:"active"`
	}{alias: (*alias)(p)}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Active = aux.Active == nil || *aux.Active
	return nil
}

type Address struct {
	Street    string `json:"street,omitempty"`
	Number    string `json:"number,omitempty"`
	District  string `json:"district,omitempty"`
	City      string `json:"city,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type Client struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Doc     string  `json:"doc,omitempty"`
	Phone   string  `json:"phone"` // digits only
	Email   string  `json:"email,omitempty"`
	Address Address `json:"address"`
}

// SaleItem is a snapshot of the product at sale time. Sales stay intact
// when the product is later edited or deleted.
type SaleItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Sale struct {
	ID            int64           `json:"id"`
	Date          time.Time       `json:"date"`
	ClientID      int64           `json:"clientId,omitempty"` // 0 = walk-in, weak reference otherwise
	Items         []SaleItem      `json:"items"`
	PaymentMethod string          `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	User          string          `json:"user"` // operator name snapshot, not a reference
}

type Expense struct {
	ID            int64           `json:"id"`
	Description   string          `json:"description"`
	Value         decimal.Decimal `json:"value"`
	Date          time.Time       `json:"date"`
	PaymentStatus string          `json:"paymentStatus"`
	IsRecurring   bool            `json:"isRecurring"`
	Month         int             `json:"month,omitempty"`       // 1-based position in a recurring series
	TotalMonths   int             `json:"totalMonths,omitempty"` // series length
}

type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	Password       string `json:"password"` // plaintext, carried over as-is
	IsAdmin        bool   `json:"isAdmin"`
	SecretQuestion string `json:"secretQuestion,omitempty"`
	SecretAnswer   string `json:"secretAnswer,omitempty"`
}

// CartItem is transient per-station state and never reaches the store.
type CartItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	MaxStock  int             `json:"maxStock"`
}
