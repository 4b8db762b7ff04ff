package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPostable(t *testing.T) {
	assert.True(t, IsPostable("sent"))
	assert.True(t, IsPostable("approved"))
	assert.True(t, IsPostable(""))
	assert.False(t, IsPostable("draft"))
	assert.False(t, IsPostable("VOID"))
}
