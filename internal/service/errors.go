package service

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCartNotFound        = errors.New("cart not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartNotNew          = errors.New("cart is not new")
	ErrNothingToSell       = errors.New("no items to be sold")
	ErrPoliciesNotAccepted = errors.New("policies must be accepted")
	ErrSlugAlreadyExists   = errors.New("slug already exists")
	ErrCategoryCycle       = errors.New("category parent link forms a cycle")
)
