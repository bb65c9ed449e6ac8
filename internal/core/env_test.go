package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEnvCaseInsensitive(t *testing.T) {
	env := MapEnv{Vars: map[string]string{"LocalAppData": `C:\Users\kim\AppData\Local`}}

	assert.Equal(t, `C:\Users\kim\AppData\Local`, env.Getenv("LOCALAPPDATA"))
	assert.Equal(t, `C:\Users\kim\AppData\Local`, env.Getenv("LocalAppData"))
	assert.Empty(t, env.Getenv("APPDATA"))
}

func TestSinkFunc(t *testing.T) {
	var lines []string
	s := SinkFunc(func(line string) { lines = append(lines, line) })

	Logf(s, "  done: %d items removed", 3)
	Discard.Log("ignored")

	assert.Equal(t, []string{"  done: 3 items removed"}, lines)
}
