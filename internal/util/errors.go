package util

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCategoryExists     = errors.New("category already exists")
	ErrMaterialExists     = errors.New("material slug already exists")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrInvalidQuiz        = errors.New("invalid quiz")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrAlreadyAttempted   = errors.New("quiz already attempted")
)
