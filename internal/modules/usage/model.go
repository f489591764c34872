package usage

import "errors"

// ErrQuotaExhausted is returned when a caller has no generations remaining
// for the current month.
var ErrQuotaExhausted = errors.New("monthly generation quota exhausted")

// DefaultQuota is the number of plan generations granted per month.
const DefaultQuota = 100
