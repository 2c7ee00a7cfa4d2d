package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TurkiHQ/DevConnecter/internal/domain"
)

func strp(s string) *string { return &s }

func TestSetDocTouchesOnlySuppliedFields(t *testing.T) {
	set := setDoc(domain.ProfileUpdate{
		Company: strp("Acme"),
		Skills:  []string{"go", "mongo"},
		Twitter: strp("https://twitter.com/acme"),
	})

	assert.Equal(t, "Acme", set["company"])
	assert.Equal(t, []string{"go", "mongo"}, set["skills"])
	assert.Equal(t, "https://twitter.com/acme", set["social.twitter"])
	assert.Contains(t, set, "updated_at")

	// absent fields must not appear at all, or an update would null them
	assert.NotContains(t, set, "website")
	assert.NotContains(t, set, "location")
	assert.NotContains(t, set, "bio")
	assert.NotContains(t, set, "status")
	assert.NotContains(t, set, "social.youtube")
	assert.NotContains(t, set, "social")
}

func TestSetDocEmptyStringIsAnExplicitValue(t *testing.T) {
	// supplying "" clears a field; that is different from omitting it
	set := setDoc(domain.ProfileUpdate{Bio: strp("")})
	assert.Equal(t, "", set["bio"])
}
