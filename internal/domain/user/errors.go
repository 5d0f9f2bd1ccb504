package user

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or missing access token")
	ErrOwnerAccessRequired = errors.New("owner access required")
)
