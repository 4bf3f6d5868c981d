package platform

import (
	"crypto/sha1" // nolint: gosec
	"encoding/hex"

	"github.com/google/uuid"
)

// HAP-compatible identifier layout.
const uuidTemplate = "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"

const hexDigits = "0123456789abcdef"

// GenerateUUID derives a stable accessory identifier from arbitrary data.
// Same input always produces the same identifier, which is what keeps
// restored accessories matched across restarts.
func GenerateUUID(data string) uuid.UUID {
	sum := sha1.Sum([]byte(data)) // nolint: gosec
	digest := hex.EncodeToString(sum[:])

	out := make([]byte, 0, len(uuidTemplate))
	i := 0
	for _, c := range []byte(uuidTemplate) {
		switch c {
		case 'x':
			out = append(out, digest[i])
			i++
		case 'y':
			out = append(out, hexDigits[(hexValue(digest[i])&0x3)|0x8])
			i++
		default:
			out = append(out, c)
		}
	}

	return uuid.MustParse(string(out))
}

// Converts single lower-case hex digit.
func hexValue(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}

	return c - '0'
}
