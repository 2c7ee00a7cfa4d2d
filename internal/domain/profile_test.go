package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TurkiHQ/DevConnecter/internal/domain"
)

func TestParseSkills(t *testing.T) {
	assert.Equal(t,
		[]string{"node", "react", "express"},
		domain.ParseSkills("node, react ,  express"))

	assert.Equal(t, []string{"go"}, domain.ParseSkills("go"))
	assert.Equal(t, []string{"a", "b"}, domain.ParseSkills("a,,b,"))
	assert.Empty(t, domain.ParseSkills("   "))
}
