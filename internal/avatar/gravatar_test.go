package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	url := GravatarURL("Test@Example.com ")
	// hash of the trimmed, lowercased address
	assert.Equal(t, "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?d=identicon", url)
	assert.Equal(t, url, GravatarURL("test@example.com"))
}
