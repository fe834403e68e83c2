package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// NormalizeWallet trims and lowercases a wallet address.
func NormalizeWallet(wallet string) string {
	return strings.ToLower(strings.TrimSpace(wallet))
}

// ShortenWallet renders a wallet as first6...last4.
func ShortenWallet(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:6] + "..." + wallet[len(wallet)-4:]
}

// IsHexWallet reports whether s is a 20-byte hex address (with or without 0x).
func IsHexWallet(s string) bool {
	return common.IsHexAddress(strings.TrimSpace(s))
}

// IsZeroAddress reports whether s parses to the all-zero address.
func IsZeroAddress(s string) bool {
	return IsHexWallet(s) && common.HexToAddress(s) == (common.Address{})
}

// LooksLikeAddress reports whether a display string is really an address, either a
// full hex address or a 0x-prefixed hex run long enough to be one (token ids, truncated addresses).
func LooksLikeAddress(s string) bool {
	s = strings.TrimSpace(s)
	if IsHexWallet(s) {
		return true
	}
	if !strings.HasPrefix(strings.ToLower(s), "0x") {
		return false
	}
	head, _, _ := strings.Cut(s[2:], "-")
	if len(head) < 16 {
		return false
	}
	for _, ch := range head {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return false
		}
	}
	return true
}
