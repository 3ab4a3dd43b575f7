package domain

import "strings"

// Amount represents a value on the ledger. Native amounts are expressed in
// drops (the ledger's smallest unit) and carry no issuer. Issued-currency
// amounts carry the currency code and the issuing account.
type Amount struct {
	// Currency is "XRP" for native amounts, otherwise a three character
	// code or its 40 character hex form (see EncodeCurrency).
	Currency string

	// Issuer is the issuing account address. Empty for native amounts.
	Issuer string

	// Value is the decimal value as a string: drops for native amounts,
	// a currency-denominated decimal otherwise.
	Value string
}

// NativeAmount builds a native amount from a drops value.
func NativeAmount(drops string) Amount {
	return Amount{Currency: "XRP", Value: drops}
}

// IssuedAmount builds an issued-currency amount.
func IssuedAmount(currency, issuer, value string) Amount {
	return Amount{Currency: currency, Issuer: issuer, Value: value}
}

// IsNative reports whether the amount is denominated in the ledger's
// native currency.
func (a Amount) IsNative() bool {
	return a.Issuer == "" && strings.EqualFold(a.Currency, "XRP")
}

// IsZero reports whether the amount has no value set.
func (a Amount) IsZero() bool {
	return a.Value == "" && a.Currency == "" && a.Issuer == ""
}

// TxValue returns the wire representation used inside a transaction:
// a plain drops string for native amounts, an object otherwise.
func (a Amount) TxValue() any {
	if a.IsNative() {
		return a.Value
	}
	return map[string]any{
		"currency": a.Currency,
		"issuer":   a.Issuer,
		"value":    a.Value,
	}
}
