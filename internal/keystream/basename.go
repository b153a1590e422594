package keystream

import "strings"

// Basename returns the suffix of s following the last '/' or '\', or all of
// s if neither separator appears. Empty input returns empty.
//
// Reference: original_source/honokamiku_decrypter.c's hm_basename.
func Basename(s string) string {
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		return s[i+1:]
	}
	return s
}
