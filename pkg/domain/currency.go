package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// currencyHexLen is the length of the 160-bit currency code form.
const currencyHexLen = 40

// EncodeCurrency normalizes a currency code for use inside a transaction.
// Standard three character codes pass through unchanged. Longer codes are
// converted to their 160-bit form: uppercase hex of the raw bytes, right
// padded with zeros to 40 characters. A 40 character hex string is assumed
// to be already encoded and passes through as-is.
func EncodeCurrency(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("currency code is empty")
	}
	if len(code) <= 3 {
		return code, nil
	}
	if len(code) == currencyHexLen && isHex(code) {
		return strings.ToUpper(code), nil
	}
	if len(code) > currencyHexLen/2 {
		return "", fmt.Errorf("currency code %q exceeds %d bytes", code, currencyHexLen/2)
	}
	encoded := strings.ToUpper(hex.EncodeToString([]byte(code)))
	return encoded + strings.Repeat("0", currencyHexLen-len(encoded)), nil
}

// DecodeCurrency reverses EncodeCurrency for display purposes. Inputs that
// are not in the 160-bit form are returned unchanged.
func DecodeCurrency(code string) string {
	if len(code) != currencyHexLen || !isHex(code) {
		return code
	}
	raw, err := hex.DecodeString(code)
	if err != nil {
		return code
	}
	return strings.TrimRight(string(raw), "\x00")
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
