// Package logging gates the editor's debug chatter. Failures and aborts go
// straight to the standard logger and are never silenced.
package logging

import (
	"fmt"
	"log"
	"sync/atomic"
)

var debug atomic.Bool

func SetDebug(on bool) { debug.Store(on) }

// Debugf logs through the standard logger when debug output is on.
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Output(2, fmt.Sprintf(format, args...))
	}
}
