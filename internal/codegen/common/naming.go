package common

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var moduleUnsafe = regexp.MustCompile(`[^0-9a-zA-Z_]+`)

// SanitizeModule removes every character outside [0-9a-zA-Z_].
func SanitizeModule(name string) string {
	return moduleUnsafe.ReplaceAllString(name, "")
}

// SanitizeIdent replaces characters outside [0-9a-zA-Z_] with '_' so the
// result can be used as part of a Go identifier.
func SanitizeIdent(name string) string {
	return SanitizeLeadingDigit(moduleUnsafe.ReplaceAllString(name, "_"))
}

// SanitizeLeadingDigit prefixes names that start with a digit with "Num".
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

// HashName returns the first 16 hex characters of the BLAKE2b-256 digest of
// name.
func HashName(name string) string {
	sum := blake2b.Sum256([]byte(name))
	return hex.EncodeToString(sum[:8])
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// TypeName joins a prefix and parts with the separator:
// TypeName("__", "RouterGroup", "app", "user") = "RouterGroup__app__user".
func TypeName(sep, prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), sep)
}
