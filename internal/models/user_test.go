package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5("jane@example.com")
	want := "https://www.gravatar.com/avatar/9e26471d35a78862c17e467d87cddedf?s=200&r=pg&d=mm"
	assert.Equal(t, want, GravatarURL("jane@example.com"))

	t.Run("email is normalized before hashing", func(t *testing.T) {
		assert.Equal(t, GravatarURL("jane@example.com"), GravatarURL("  JANE@Example.COM "))
	})
}
