package services

import "errors"

var (
	ErrDuplicateCode     = errors.New("a product with this code already exists")
	ErrInvalidCode       = errors.New("invalid product code")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrStockRange        = errors.New("stock must be between 0 and 999999")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductUnavail    = errors.New("product unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrIncompleteName    = errors.New("first and last name required")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrBadCreds          = errors.New("invalid username or password")
	ErrBadAnswer         = errors.New("incorrect recovery answer")
	ErrEmptyPassword     = errors.New("password must not be empty")
	ErrUserNotFound      = errors.New("user not found")
	ErrProtectedUser     = errors.New("the primary administrator cannot be deleted")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrNothingToDelete   = errors.New("nothing to delete")
	ErrBadConfirmation   = errors.New("confirmation phrase does not match")
)
