// Package avatar builds gravatar image URLs.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// URL returns the identicon avatar URL for email at the given pixel size.
// The email is lower-cased before hashing, so the result only depends on
// the lower-cased email and the size.
func URL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return fmt.Sprintf("%s%s?d=identicon&s=%d", baseURL, hex.EncodeToString(sum[:]), size)
}
