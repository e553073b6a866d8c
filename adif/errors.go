package adif

import (
	stderrors "errors"

	"github.com/Station-Manager/errors"
)

// ErrParse reports malformed ADIF input. Every error returned by Decode
// wraps it, so callers can test with errors.Is(err, adif.ErrParse).
var ErrParse = stderrors.New("malformed ADIF")

func parseError(op errors.Op, format string, args ...interface{}) error {
	return errors.New(op).Err(ErrParse).Msgf(format, args...)
}
