package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/voyager/internal/audio"
	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/logging"
	"github.com/tomz197/voyager/internal/loop"
	"github.com/tomz197/voyager/internal/prefs"
)

func main() {
	logPath := config.GetEnv("VOYAGER_LOG", "voyager.log")
	if err := logging.SetOutput([]string{logPath}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log %s: %v\n", logPath, err)
		os.Exit(1)
	}
	logging.SetLevel(logging.ParseLevel(config.GetEnv("VOYAGER_LOG_LEVEL", "info")))
	logging.SetSource("game")
	defer logging.Sync()

	tuning, err := config.LoadTuning(config.GetEnv("VOYAGER_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad tuning: %v\n", err)
		os.Exit(1)
	}

	redisDB, _ := strconv.Atoi(config.GetEnv("VOYAGER_REDIS_DB", "0"))
	store, err := prefs.Open(prefs.Options{
		RedisAddr: config.GetEnv("VOYAGER_REDIS", ""),
		RedisDB:   redisDB,
		FilePath:  config.GetEnv("VOYAGER_PREFS", "voyager.prefs"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open preferences: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	engine := audio.NewEngine(audio.LoadFlags(store))
	if config.GetEnvBool("VOYAGER_SILENT", false) {
		logging.Infof("audio disabled by VOYAGER_SILENT")
	} else {
		engine.OpenOrSilent()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Game: loop.GameOptions{
			Tuning: tuning,
			Prefs:  store,
			Audio:  engine,
		},
	}
	if err := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		logging.Errorf("game error: %v", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
