package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetDebug(false)
	})
	return &buf
}

func TestDebugfSilentByDefault(t *testing.T) {
	buf := captureLog(t)
	SetDebug(false)

	Debugf("[STORE] Cleared mask")
	assert.Empty(t, buf.String())
}

func TestDebugfWritesWhenEnabled(t *testing.T) {
	buf := captureLog(t)
	SetDebug(true)

	Debugf("[STORE] Loaded %d polygons", 3)
	assert.Equal(t, "[STORE] Loaded 3 polygons\n", buf.String())
}

func TestDebugOffKeepsStandardLog(t *testing.T) {
	buf := captureLog(t)
	SetDebug(false)

	log.Printf("[SESSION] export aborted")
	assert.Contains(t, buf.String(), "aborted")
}
