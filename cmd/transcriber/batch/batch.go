package batch

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lukechampine.com/blake3"

	"github.com/podscribe/podcast-transcriber/cmd/transcriber/config"
	"github.com/podscribe/podcast-transcriber/cmd/transcriber/store"
	"github.com/podscribe/podcast-transcriber/cmd/transcriber/transcribe"
)

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".aac":  true,
}

type Batch struct {
	cfg   config.TranscriberConfig
	rec   transcribe.Recognizer
	store *store.Store
}

// ItemResult records the outcome for a single audio file. Err is set when
// the item failed; Skipped marks files whose content hash was already in
// the store for the configured model.
type ItemResult struct {
	Path       string
	Transcript transcribe.Transcript
	Skipped    bool
	Err        error
}

// New creates a batch over the given recognizer. st may be nil, in which
// case no dedup or bookkeeping is done.
func New(cfg config.TranscriberConfig, rec transcribe.Recognizer, st *store.Store) (*Batch, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	if rec == nil {
		return nil, fmt.Errorf("recognizer should not be nil")
	}

	return &Batch{
		cfg:   cfg,
		rec:   rec,
		store: st,
	}, nil
}

// Discover expands the given files and directories into the sorted list of
// audio files to transcribe. Directories are walked recursively; files
// with an unknown extension are ignored.
func Discover(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && audioExts[strings.ToLower(filepath.Ext(p))] {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", path, err)
		}
	}

	sort.Strings(files)

	return files, nil
}

// Run processes each file independently. One item's failure is recorded in
// its result and never aborts the rest of the batch; only context
// cancellation stops further processing.
func (b *Batch) Run(ctx context.Context, files []string) []ItemResult {
	results := make([]ItemResult, 0, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			results = append(results, ItemResult{Path: path, Err: err})
			continue
		}

		res := b.processFile(ctx, path)
		if res.Err != nil {
			slog.Error("failed to transcribe file",
				slog.String("path", path), slog.String("err", res.Err.Error()))
		}
		results = append(results, res)
	}

	return results
}

func (b *Batch) processFile(ctx context.Context, path string) ItemResult {
	res := ItemResult{Path: path}

	hash, err := hashFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to hash file: %w", err)
		return res
	}

	if b.store != nil {
		_, found, err := b.store.Lookup(ctx, hash, string(b.cfg.Model))
		if err != nil {
			res.Err = fmt.Errorf("failed to look up transcription: %w", err)
			return res
		}
		if found {
			slog.Info("skipping already transcribed file", slog.String("path", path))
			res.Skipped = true
			return res
		}
	}

	rec, err := b.rec.Recognize(ctx, path)
	if err != nil {
		res.Err = fmt.Errorf("failed to recognize audio: %w", err)
		return res
	}

	tr := transcribe.NewTranscript(rec, string(b.cfg.Model), b.cfg.Language, b.cfg.SegmentOpts)

	if err := b.publishTranscript(path, tr); err != nil {
		res.Err = err
		return res
	}

	if b.store != nil {
		err := b.store.Save(ctx, store.Record{
			Name:          filepath.Base(path),
			Blake3Hash:    hash,
			Model:         string(b.cfg.Model),
			Language:      tr.Language,
			Duration:      tr.Duration,
			SegmentsCount: len(tr.Segments),
		})
		if err != nil {
			res.Err = fmt.Errorf("failed to record transcription: %w", err)
			return res
		}
	}

	res.Transcript = tr

	return res
}

// publishTranscript writes the configured output artifacts to the output
// dir, named after the audio file.
func (b *Batch) publishTranscript(audioPath string, tr transcribe.Transcript) error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0700); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	for _, format := range b.cfg.OutputFormats {
		outPath := filepath.Join(b.cfg.OutputDir, stem+"."+string(format))
		f, err := os.OpenFile(outPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}

		switch format {
		case config.OutputFormatJSON:
			err = tr.JSON(f)
		case config.OutputFormatSRT:
			err = tr.SRT(f)
		default:
			err = fmt.Errorf("unsupported output format %q", format)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s file: %w", format, err)
		}
	}

	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash contents: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
