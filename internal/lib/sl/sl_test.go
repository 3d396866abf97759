package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecret(t *testing.T) {
	assert.Equal(t, "", Secret("k", "").Value.String())
	assert.Equal(t, "***", Secret("k", "abc").Value.String())
	assert.Equal(t, "a****f", Secret("k", "abcdef").Value.String())
	assert.Equal(t, "12******90", Secret("k", "1234567890").Value.String())
}

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "", Err(nil).Value.String())
}
