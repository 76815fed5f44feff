package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrZeroAmount indicates an attempt to record a movement with a zero amount.
var ErrZeroAmount = errors.New("cannot record a transaction with a zero amount")

// ErrUnknownAccount indicates a lookup of an account number that does not exist in the ledger.
var ErrUnknownAccount = errors.New("account not found in ledger")

// ErrDuplicateAccount indicates an attempt to create an account number that already exists.
var ErrDuplicateAccount = errors.New("account number already exists")

// ErrUnsupportedAccountType indicates an account type outside the closed set.
var ErrUnsupportedAccountType = errors.New("unsupported account type")
