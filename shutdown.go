package inject

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// shutdownHook ties a scope's destruction to process exit. It registers
// for SIGINT/SIGTERM at scope construction; on delivery it runs the same
// close logic as an explicit Close, marking the scope so Close does not
// try to deregister the hook from within the hook itself.
type shutdownHook struct {
	scope *beanScope
	sig   chan os.Signal
	quit  chan struct{}
	once  sync.Once
}

func newShutdownHook(scope *beanScope) *shutdownHook {
	hook := &shutdownHook{
		scope: scope,
		sig:   make(chan os.Signal, 1),
		quit:  make(chan struct{}),
	}
	signal.Notify(hook.sig, syscall.SIGINT, syscall.SIGTERM)
	go hook.run()
	return hook
}

func (h *shutdownHook) run() {
	select {
	case <-h.sig:
		h.scope.shutdownFromHook()
	case <-h.quit:
	}
}

// deregister stops signal delivery and releases the hook goroutine.
// Idempotent; called from an explicit Close that beat the hook.
func (h *shutdownHook) deregister() {
	h.once.Do(func() {
		signal.Stop(h.sig)
		close(h.quit)
	})
}
