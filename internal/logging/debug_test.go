package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("LAB_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("LAB_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestDebugfWritesOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	t.Setenv("LAB_DEBUG", "")
	Debugf("hidden %d\n", 1)
	assert.Empty(t, buf.String())

	t.Setenv("LAB_DEBUG", "true")
	Debugf("store: added %s\n", "task")
	Debugln("render", 3)
	assert.Equal(t, "store: added task\nrender 3\n", buf.String())
}

func TestSetVerbose(t *testing.T) {
	t.Setenv("LAB_DEBUG", "")
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, DebugEnabled())

	SetVerbose(false)
	assert.False(t, DebugEnabled())
}
