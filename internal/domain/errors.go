package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrBudgetExists    = errors.New("budget already exists for this category and month")
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrBadCredentials  = errors.New("invalid email or password")
)

// Validation constants
const (
	MaxCategoryLength = 100
	MaxMerchantLength = 255
	MinPasswordLength = 8
)
