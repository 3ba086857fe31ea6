// Package logger builds log/slog loggers and the attributes shared across
// the service.
package logger

import (
	"log/slog"
	"strings"
)

// Error records err under "error". A nil err yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Identifier records a tax identifier under key with all but the first four
// and the last two characters masked. Individual INNs are personal data.
func Identifier(key, value string) slog.Attr {
	return slog.String(key, Mask(value))
}

// Mask hides the middle of an identifier: "500100732259" -> "5001******59".
// Values of six characters or fewer are fully masked.
func Mask(value string) string {
	r := []rune(value)
	if len(r) <= 6 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-6) + string(r[len(r)-2:])
}
