package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/nixlim/threadscope/internal/config"
	"github.com/nixlim/threadscope/internal/logging"
	"github.com/nixlim/threadscope/internal/metrics"
	"github.com/nixlim/threadscope/internal/output"
	"github.com/nixlim/threadscope/internal/session"
	"github.com/nixlim/threadscope/internal/tui"
)

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "threadscope: %v\n", err)
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer, res *config.LoadResult, opts options) error {
	cfg := res.Config
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "threadscope: config warning: %s\n", w)
	}

	format, err := output.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	logs := logging.Setup(cfg.Log)
	defer logs.Close()
	mainLog := logs.Component("main")

	broker := session.NewBroker(session.DefaultBrokerBuffer)
	defer broker.Close()

	sess := session.NewProcfs(broker,
		session.WithLogger(logs.Component("session")),
		session.WithOperationTimeout(time.Duration(cfg.Session.OperationTimeoutMS)*time.Millisecond),
	)
	if cfg.Session.PID > 0 {
		if err := sess.Attach(cfg.Session.PID); err != nil {
			return fmt.Errorf("attach %d: %w", cfg.Session.PID, err)
		}
	}

	recorder := metrics.New()
	recorder.TrackDropped(broker.Dropped)

	if opts.once || !isTerminal(stdout) {
		mainLog.Debug().Str("format", opts.output).Msg("one-shot output")
		return output.Render(stdout, format, output.Collect(sess, opts.filter, recorder))
	}

	var srv *metrics.Server
	if cfg.Metrics.Listen != "" {
		srv, err = metrics.Listen(cfg.Metrics.Listen, recorder, logs.Component("metrics"))
		if err != nil {
			return err
		}
		go srv.Serve()
		mainLog.Info().Str("addr", srv.Addr()).Msg("metrics listening")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		sess.Watch(ctx, time.Duration(cfg.Session.WatchIntervalMS)*time.Millisecond)
	}()

	shutdownMgr := tui.NewShutdownManager()
	shutdownMgr.StopWatcher = func() {
		cancel()
		<-watchDone
	}
	if srv != nil {
		shutdownMgr.StopMetrics = srv.Shutdown
	}
	shutdownMgr.Cleanup = broker.Close

	title := "no process"
	if pid := sess.PID(); pid > 0 {
		title = fmt.Sprintf("pid %d", pid)
	}

	model := tui.NewModel(sess, cfg.Display,
		tui.WithController(sess),
		tui.WithObserver(recorder),
		tui.WithLogger(logs.Component("tui")),
		tui.WithTitle(title),
		tui.WithFilter(opts.filter),
		tui.WithOnShutdown(func() {
			_ = shutdownMgr.Shutdown()
		}),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
	)

	notes, unsubscribe := broker.Subscribe()
	defer unsubscribe()
	go func() {
		for n := range notes {
			p.Send(tui.NotificationMsg{Notification: n})
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			_ = shutdownMgr.Shutdown()
			p.Quit()
		case <-ctx.Done():
		}
	}()

	mainLog.Info().Int("pid", sess.PID()).Msg("starting")
	_, runErr := p.Run()
	if err := shutdownMgr.Shutdown(); err != nil {
		mainLog.Warn().Err(err).Msg("metrics shutdown")
	}
	return runErr
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
