// Package shard implements the on-disk key layout shared by the
// filesystem storage backend: keys are split into 2-character directory
// chunks under a root, with a sentinel leaf file "$" holding the value.
package shard

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/meppu/eight/errs"
)

// leafName is the sentinel file holding a key's value at the bottom of
// its chunk-directory chain.
const leafName = "$"

// ValidateKey reports whether key contains only letters, digits, or
// underscores.
func ValidateKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

// EncodePath validates key and returns the leaf file path for it under
// root: root, then key split into 2-character chunks (the final chunk may
// be a single character), followed by the sentinel leaf name.
func EncodePath(root, key string) (string, error) {
	if len(key) < 2 {
		return "", errs.New(errs.KeyTooShort)
	}
	if !ValidateKey(key) {
		return "", errs.New(errs.KeyWrongFormat)
	}

	parts := append([]string{root}, chunk(key)...)
	parts = append(parts, leafName)

	return filepath.Join(parts...), nil
}

// chunk splits key into runs of (up to) 2 runes, in order.
func chunk(key string) []string {
	runes := []rune(key)
	segments := make([]string, 0, (len(runes)+1)/2)

	for i := 0; i < len(runes); i += 2 {
		end := i + 2
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[i:end]))
	}

	return segments
}

// searchBase resolves the directory that holds only complete 2-character
// chunks of prefix, plus, when prefix has odd length, the trailing rune
// that every first-level subdirectory of that directory must begin with.
//
// The original implementation this is derived from ascends past the
// partial final chunk for an odd-length prefix but never re-filters the
// subdirectories it then walks, so it returns a superset of matches
// whenever two keys share an odd-length prefix up to its last character
// but diverge on the character immediately after. This implementation
// applies that filter, treating the omission as a defect to fix rather
// than behavior to reproduce.
func searchBase(root, prefix string) (dir string, oddFilter rune, hasFilter bool) {
	runes := []rune(prefix)
	even := len(runes) - len(runes)%2

	parts := append([]string{root}, chunk(string(runes[:even]))...)
	dir = filepath.Join(parts...)

	if len(runes)%2 == 1 {
		return dir, runes[len(runes)-1], true
	}
	return dir, 0, false
}

// keyFromLeaf reconstructs a full key from floorPrefix (the longest
// even-length prefix of the original search prefix) and the chunk
// segments walked from searchBase's directory down to (and including)
// the directory immediately containing the leaf file.
func keyFromLeaf(floorPrefix string, segments []string) string {
	var b strings.Builder
	b.WriteString(floorPrefix)
	for _, s := range segments {
		b.WriteString(s)
	}
	return b.String()
}
