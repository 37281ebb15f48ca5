package address

import "errors"

var (
	ErrNoAddresses    = errors.New("no addresses found")
	ErrOutputRequired = errors.New("output path is required")
)
