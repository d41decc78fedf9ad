package avatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL returns the Gravatar image URL used as the default avatar for
// freshly registered users.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", md5.Sum([]byte(normalized)))
}
