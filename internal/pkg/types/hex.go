// Package types holds small value types shared by the configuration and
// blockchain layers.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hex represents a hexadecimal-encoded quantity as a string (e.g., "0x64").
// It is used for chain ids and block numbers and validates itself when
// decoded from JSON or from an environment variable.
type Hex string

// HexFromString validates the input string and returns a Hex value if valid.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// HexFromUint64 encodes n as a lowercase 0x-prefixed quantity.
func HexFromUint64(n uint64) Hex {
	return Hex("0x" + strconv.FormatUint(n, 16))
}

// validateHex checks whether a string is a valid hexadecimal number starting with "0x" or "0X".
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex string must start with 0x")
	}

	if _, err := strconv.ParseUint(s[2:], 16, 64); err != nil {
		return fmt.Errorf("invalid hexadecimal value: %w", err)
	}

	return nil
}

// MarshalJSON encodes the Hex as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON parses and validates a JSON-encoded hexadecimal string.
// A JSON null leaves h unchanged.
func (h *Hex) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	return h.Decode(s)
}

// Decode implements envconfig.Decoder so Hex fields can be loaded from the
// environment. Plain decimal values ("100") are accepted and re-encoded.
func (h *Hex) Decode(value string) error {
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		*h = HexFromUint64(n)
		return nil
	}

	if err := validateHex(value); err != nil {
		return err
	}

	*h = Hex(value)
	return nil
}

// Canonical returns the lowercase form without leading zeros, as expected by
// wallet methods such as wallet_switchEthereumChain. Invalid values are
// returned unchanged.
func (h Hex) Canonical() Hex {
	if validateHex(string(h)) != nil {
		return h
	}

	return HexFromUint64(h.Uint64())
}

// Uint64 returns the decoded value. If parsing fails, it returns zero.
func (h Hex) Uint64() uint64 {
	if len(h) < 2 {
		return 0
	}

	v, _ := strconv.ParseUint(string(h)[2:], 16, 64)
	return v
}

// String returns the raw hex string.
func (h Hex) String() string {
	return string(h)
}
