package fundtrade

import "errors"

// The error types below are the failure taxonomy of a replay. They are plain
// typed errors so callers can branch with errors.As / errors.Is.

// TradeBehaviorError reports a temporally impossible instruction, such as
// selling an instrument that was never bought. It is fatal: the replay stops
// before the offending row is appended.
type TradeBehaviorError struct {
	Msg string
}

func (e *TradeBehaviorError) Error() string { return e.Msg }

// ParserFailure reports input whose encoding could not be recognized, such
// as a corporate-action comment that is neither a dividend nor a split.
type ParserFailure struct {
	Msg string
}

func (e *ParserFailure) Error() string { return e.Msg }

// FundTypeError reports an instrument configuration that contradicts its
// fund type, e.g. a money-market instrument carrying a redemption fee table.
type FundTypeError struct {
	Msg string
}

func (e *FundTypeError) Error() string { return e.Msg }

// DataSourceError reports malformed collaborator data, such as an unsorted
// price series. Providers own retries; this package only surfaces.
type DataSourceError struct {
	Msg string
}

func (e *DataSourceError) Error() string { return e.Msg }

// ErrNoConvergence is returned by the XIRR solver when the Newton iteration
// does not settle within its iteration budget.
var ErrNoConvergence = errors.New("xirr: newton iteration did not converge")
