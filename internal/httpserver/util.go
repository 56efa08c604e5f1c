package httpserver

import (
	"errors"
	"strconv"
)

// errIDOutOfRange marks a well-formed id that no stored row can have.
var errIDOutOfRange = errors.New("id out of range")

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// parseID accepts non-negative decimal ids. Ids too large for int64 yield
// errIDOutOfRange so callers can answer with their own not-found message.
func parseID(s string) (int64, error) {
	v, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, errIDOutOfRange
		}
		return 0, err
	}
	return int64(v), nil
}
