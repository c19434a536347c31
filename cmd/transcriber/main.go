package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/podscribe/podcast-transcriber/cmd/transcriber/batch"
	"github.com/podscribe/podcast-transcriber/cmd/transcriber/config"
	"github.com/podscribe/podcast-transcriber/cmd/transcriber/funasr"
	"github.com/podscribe/podcast-transcriber/cmd/transcriber/store"
)

func slogReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
	}
	return a
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: slogReplaceAttr,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		slog.Error("usage: transcriber <audio file or dir> ...")
		os.Exit(1)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("failed to load config", slog.String("err", err.Error()))
		os.Exit(1)
	}
	cfg.SetDefaults()
	if err := cfg.IsValid(); err != nil {
		slog.Error("failed to validate config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	files, err := batch.Discover(os.Args[1:])
	if err != nil {
		slog.Error("failed to discover audio files", slog.String("err", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		slog.Error("no audio files found")
		os.Exit(1)
	}

	recognizer, err := funasr.NewRecognizer(funasr.Config{
		Model:    string(cfg.Model),
		Device:   string(cfg.Device),
		Language: cfg.Language,
	})
	if err != nil {
		slog.Error("failed to create recognizer", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var st *store.Store
	if cfg.StorePath != "" {
		st, err = store.New(cfg.StorePath)
		if err != nil {
			slog.Error("failed to open store", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	b, err := batch.New(cfg, recognizer, st)
	if err != nil {
		slog.Error("failed to create batch", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting transcription", slog.Int("files", len(files)))

	results := b.Run(ctx, files)

	var failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Skipped:
			slog.Info("skipped", slog.String("path", res.Path))
		default:
			slog.Info("transcribed", slog.String("path", res.Path),
				slog.Int("segments", len(res.Transcript.Segments)),
				slog.Float64("duration", res.Transcript.Duration))
		}
	}

	if err := recognizer.Destroy(); err != nil {
		slog.Error("failed to destroy recognizer", slog.String("err", err.Error()))
	}
	if st != nil {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", slog.String("err", err.Error()))
		}
	}

	if failed > 0 {
		slog.Error("batch finished with failures",
			slog.Int("failed", failed), slog.Int("total", len(results)))
		os.Exit(1)
	}

	slog.Info("batch finished", slog.Int("total", len(results)))
}
