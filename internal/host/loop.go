package host

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ProChat/shell/internal/logging"
	"github.com/GriffinCanCode/ProChat/shell/internal/shared/id"
)

// Loop is a headless EventSource. It stands in for a single-window GUI
// event loop: the window opens when Run starts and is asked to close on a
// shutdown signal, RequestClose, or context cancellation.
type Loop struct {
	mu       sync.Mutex
	ready    []ReadyHandler
	closing  []CloseRequestedHandler
	window   id.WindowID
	signals  []os.Signal
	closeReq chan struct{}
	once     sync.Once
	logger   *logging.Logger
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithSignals replaces the shutdown signals (SIGINT, SIGTERM). With none,
// only RequestClose and context cancellation close the window.
func WithSignals(signals ...os.Signal) LoopOption {
	return func(l *Loop) {
		l.signals = signals
	}
}

// WithLoopLogger sets the logger
func WithLoopLogger(logger *logging.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates a loop with a single primary window
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		window:   id.NewWindowID(),
		signals:  []os.Signal{os.Interrupt, syscall.SIGTERM},
		closeReq: make(chan struct{}),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Component("loop")
	return l
}

// OnReady registers a ready handler
func (l *Loop) OnReady(h ReadyHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ready = append(l.ready, h)
}

// OnCloseRequested registers a close-requested handler
func (l *Loop) OnCloseRequested(h CloseRequestedHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closing = append(l.closing, h)
}

// Window returns the primary window's ID
func (l *Loop) Window() id.WindowID {
	return l.window
}

// RequestClose asks the primary window to close. Safe to call repeatedly.
func (l *Loop) RequestClose() {
	l.once.Do(func() {
		close(l.closeReq)
	})
}

// Run dispatches ready on its own goroutine and blocks until close is
// requested. Close handlers run on the calling goroutine without waiting for
// ready to finish, so they may observe startup in progress. Run returns once
// both have completed.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	ready := append([]ReadyHandler(nil), l.ready...)
	closing := append([]CloseRequestedHandler(nil), l.closing...)
	l.mu.Unlock()

	sigCtx := ctx
	if len(l.signals) > 0 {
		var stop context.CancelFunc
		sigCtx, stop = signal.NotifyContext(ctx, l.signals...)
		defer stop()
	}

	handlerCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, h := range ready {
			h(handlerCtx)
		}
	}()

	l.logger.Info("Window opened", zap.String("window", l.window.String()))

	select {
	case <-sigCtx.Done():
		l.logger.Info("Shutdown signal received", zap.NamedError("cause", context.Cause(sigCtx)))
	case <-l.closeReq:
	}

	l.logger.Info("Window close requested", zap.String("window", l.window.String()))
	for _, h := range closing {
		h(handlerCtx, l.window)
	}

	wg.Wait()
	return nil
}
