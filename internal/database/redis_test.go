package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisSessionKey(t *testing.T) {
	r := &RedisSessions{namespace: "streambot"}
	assert.Equal(t, "streambot:session:42", r.key(42))
}
