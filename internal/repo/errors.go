package repo

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidQuantityChange = errors.New("stock cannot be negative")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
)
