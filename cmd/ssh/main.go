package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlog "github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/tomz197/voyager/internal/audio"
	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/feed"
	"github.com/tomz197/voyager/internal/logging"
	"github.com/tomz197/voyager/internal/loop"
	"github.com/tomz197/voyager/internal/prefs"
	"github.com/tomz197/voyager/internal/round"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	drainTimeout       = 15 * time.Second
)

// sessions tracks running games so shutdown can wait for them.
type sessions struct {
	ctx    context.Context
	wg     sync.WaitGroup
	tuning config.Tuning
	store  *prefs.Prefs
	hub    *feed.Hub
	idle   time.Duration
}

func main() {
	logging.SetSource("ssh")
	logging.SetLevel(logging.ParseLevel(config.GetEnv("VOYAGER_LOG_LEVEL", "info")))
	defer logging.Sync()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logging.Warnf("failed to get working directory: %v", workErr)
	}
	logging.Infof("SSH config: host=%s port=%s hostKeyPath=%s workingDir=%s", host, port, hostKeyPath, workingDir)

	tuning, err := config.LoadTuning(config.GetEnv("VOYAGER_CONFIG", ""))
	if err != nil {
		logging.Fatalf("bad tuning: %v", err)
	}
	redisDB, _ := strconv.Atoi(config.GetEnv("VOYAGER_REDIS_DB", "0"))
	store, err := prefs.Open(prefs.Options{
		RedisAddr: config.GetEnv("VOYAGER_REDIS", ""),
		RedisDB:   redisDB,
		FilePath:  config.GetEnv("VOYAGER_PREFS", ""),
	})
	if err != nil {
		logging.Fatalf("failed to open preferences: %v", err)
	}
	defer store.Close()

	idle := loop.DefaultIdleTimeout
	if v := config.GetEnv("SSH_IDLE_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			idle = d
		} else {
			logging.Warnf("ignoring SSH_IDLE_TIMEOUT=%q: %v", v, err)
		}
	}

	ctx, stopSessions := context.WithCancel(context.Background())
	defer stopSessions()
	ss := &sessions{ctx: ctx, tuning: tuning, store: store, idle: idle}

	var feedServer *http.Server
	if addr := config.GetEnv("FEED_ADDR", ""); addr != "" {
		ss.hub = feed.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/feed", ss.hub)
		feedServer = &http.Server{Addr: addr, Handler: mux}
		go func() {
			logging.Infof("Starting round feed on ws://%s/feed", addr)
			if err := feedServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Errorf("feed server error: %v", err)
			}
		}()
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			ss.gameMiddleware,
			activeterm.Middleware(),
			wishlog.MiddlewareWithLogger(zap.NewStdLog(logging.Logger())),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logging.Fatalf("failed to create server: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logging.Infof("Starting SSH server on %s:%s", host, port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logging.Fatalf("server error: %v", err)
		}
	}()

	<-done
	logging.Infof("Shutting down server...")

	// Sessions show a shutdown notice and end on their own.
	stopSessions()
	ss.wait(drainTimeout)

	if ss.hub != nil {
		ss.hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if feedServer != nil {
		_ = feedServer.Shutdown(shutdownCtx)
	}
	if err := s.Shutdown(shutdownCtx); err != nil {
		logging.Fatalf("shutdown error: %v", err)
	}
}

func (ss *sessions) wait(timeout time.Duration) {
	drained := make(chan struct{})
	go func() {
		ss.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		logging.Infof("All sessions ended")
	case <-time.After(timeout):
		logging.Warnf("Sessions still running after %v, closing anyway", timeout)
	}
}

// gameMiddleware runs one game per SSH session.
func (ss *sessions) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		if ss.ctx.Err() != nil {
			fmt.Fprintln(sess, "Server is shutting down, try again shortly.")
			return
		}
		ss.wg.Add(1)
		defer ss.wg.Done()

		logging.Infof("New game session: user=%s, terminal=%s, size=%dx%d",
			sess.User(), pty.Term, pty.Window.Width, pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// Per-user records; no speaker on a remote session.
		store := ss.store.Namespace(sess.User())
		var presenters []round.Presenter
		if ss.hub != nil {
			presenters = append(presenters, ss.hub.Presenter(sess.User()))
		}

		opts := loop.Options{
			Game: loop.GameOptions{
				Tuning:     ss.tuning,
				Prefs:      store,
				Audio:      audio.NewEngine(audio.LoadFlags(store)),
				Presenters: presenters,
			},
			TermSizeFunc: sizeTracker.getSize,
			IdleWarn:     ss.idle - (loop.DefaultIdleTimeout - loop.DefaultIdleWarn),
			IdleTimeout:  ss.idle,
		}
		if err := loop.Run(ss.ctx, bufio.NewReader(sess), sess, opts); err != nil {
			logging.Errorf("Game error for %s: %v", sess.User(), err)
		}

		logging.Infof("Session ended: user=%s", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
