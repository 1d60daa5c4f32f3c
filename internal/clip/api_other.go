//go:build !windows

package clip

import (
	"log/slog"
	"runtime"
	"sync"
)

var (
	systemOnce sync.Once
	systemSim  *Sim
)

// System returns a process-local simulated clipboard. There is no system
// clipboard binding outside Windows; copies only live as long as the process.
func System() API {
	systemOnce.Do(func() {
		slog.Warn("no system clipboard on this platform, using a process-local clipboard", "goos", runtime.GOOS)
		systemSim = NewSim()
	})
	return systemSim
}
