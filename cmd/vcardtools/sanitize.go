package main

import "strings"

// invalidFilenameChars are replaced with '_' by sanitizeFilename (§6.2).
const invalidFilenameChars = `.\/"'!@#?$%^&*|()[]{};:<>`

// sanitizeFilename makes name safe to use as a single path segment and
// appends ext.
func sanitizeFilename(name, ext string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(invalidFilenameChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String() + ext
}
