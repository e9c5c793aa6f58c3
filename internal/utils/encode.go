package utils

import "strings"

const allowedIdentChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"

// SQLEncode sanitizes arbitrary user text into a physical SQL identifier.
// Characters outside [A-Za-z0-9_] are dropped, order is preserved. The
// second return reports whether any character was removed, i.e. whether the
// human-readable name differs from the physical identifier.
//
// SQLEncode never fails; callers must treat an empty result as unusable.
func SQLEncode(input string) (string, bool) {
	var b strings.Builder
	b.Grow(len(input))

	lossy := false
	for _, c := range input {
		if strings.ContainsRune(allowedIdentChars, c) {
			b.WriteRune(c)
		} else {
			lossy = true
		}
	}

	return b.String(), lossy
}
