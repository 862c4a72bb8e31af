package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_MasksAllOccurrences(t *testing.T) {
	out := String("login -p hunter2 (was hunter2)", "hunter2")

	assert.Equal(t, "login -p **** (was ****)", out)
	assert.NotContains(t, out, "hunter2")
}

func TestString_MultipleSecrets(t *testing.T) {
	out := String("user=alice pass=s3cret token=abc123", "s3cret", "abc123")

	assert.NotContains(t, out, "s3cret")
	assert.NotContains(t, out, "abc123")
	assert.Contains(t, out, "user=alice")
}

func TestString_EmptySecretIgnored(t *testing.T) {
	out := String("nothing to hide", "")

	assert.Equal(t, "nothing to hide", out)
}

func TestCommand_JoinsAndMasks(t *testing.T) {
	out := Command("docker", []string{"login", "-u", "alice", "--password", "s3cret"}, "s3cret")

	assert.Equal(t, "docker login -u alice --password ****", out)
}
