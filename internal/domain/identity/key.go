// Package identity derives stable participant identities from roster rows
// and resolves incoming rows against existing records.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
)

// noNumber is the key segment used when a row carries no jersey number.
// Two rows without numbers but with the same name collapse to the same
// participant.
const noNumber = "nonum"

// idHexLen is how many hex characters of the key digest become the
// participant id.
const idHexLen = 20

// Key builds the identity key for a participant within an event. The same
// person must produce the same key across imports, so name parts are
// lowercased, trimmed, and stripped of non-printable runes, and the jersey
// number is carried as a plain integer. "12", "12.0", and 12 all collide.
func Key(eventID, first, last string, number *int) string {
	num := noNumber
	if number != nil {
		num = strconv.Itoa(*number)
	}
	return strings.Join([]string{
		eventID,
		normalizePart(first),
		normalizePart(last),
		num,
	}, "|")
}

// ID derives the durable participant id from an identity key: the first 20
// hex characters of its SHA-256 digest. Collisions at 80 bits are not a
// practical concern at roster scale.
func ID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:idHexLen]
}

func normalizePart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
