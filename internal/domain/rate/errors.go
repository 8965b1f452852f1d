package rate

import "errors"

var (
	ErrEmployeeIDRequired = errors.New("employee id is required for rate resolution")
)
