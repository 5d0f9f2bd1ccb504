package wallet

import "errors"

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletForbidden     = errors.New("not allowed to access this wallet")
	ErrTransactionNotFound = errors.New("wallet transaction not found")
)
