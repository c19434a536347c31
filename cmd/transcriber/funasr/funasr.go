package funasr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/podscribe/podcast-transcriber/cmd/transcriber/transcribe"
)

const defaultBin = "funasr"

type Config struct {
	// The FunASR runner binary to execute. Defaults to "funasr" on PATH.
	Bin string
	// The ASR model to load (e.g. paraformer-zh).
	Model string
	// The inference device: auto, cpu, mps or cuda:N.
	Device string
	// Language hint passed to the model; "auto" lets the model detect it.
	Language string
}

func (c Config) IsValid() error {
	if c == (Config{}) {
		return fmt.Errorf("invalid empty config")
	}

	if c.Model == "" {
		return fmt.Errorf("invalid Model: should not be empty")
	}

	if c.Device == "" {
		return fmt.Errorf("invalid Device: should not be empty")
	}

	return nil
}

// Recognizer runs speech recognition through the FunASR command line
// runner. The runner owns the model stack (ASR, VAD, punctuation
// restoration, character alignment); this side only consumes its JSON
// result. Binary and device resolution happen lazily, once, on first use.
type Recognizer struct {
	cfg Config

	initOnce sync.Once
	initErr  error
	bin      string
	device   string
}

func NewRecognizer(cfg Config) (*Recognizer, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	return &Recognizer{cfg: cfg}, nil
}

// init resolves the runner binary and the inference device. Kept out of
// NewRecognizer so construction stays cheap and the cost is paid on the
// first transcription only.
func (r *Recognizer) init() error {
	r.initOnce.Do(func() {
		bin := r.cfg.Bin
		if bin == "" {
			bin = defaultBin
		}
		path, err := exec.LookPath(bin)
		if err != nil {
			r.initErr = fmt.Errorf("failed to locate funasr runner: %w", err)
			return
		}
		r.bin = path
		r.device = resolveDevice(r.cfg.Device)

		slog.Debug("funasr runner initialized",
			slog.String("bin", r.bin), slog.String("device", r.device))
	})
	return r.initErr
}

// resolveDevice maps the auto device to cuda when an NVIDIA driver is
// present, cpu otherwise.
func resolveDevice(device string) string {
	if device != "auto" {
		return device
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return "cuda:0"
	}
	return "cpu"
}

// result mirrors the runner's JSON output. Timestamp values can arrive as
// integers or floats depending on the model, hence the decimal decoding.
type result struct {
	Text      string              `json:"text"`
	Timestamp [][]decimal.Decimal `json:"timestamp"`
}

func (r *Recognizer) Recognize(ctx context.Context, audioPath string) (transcribe.Recognition, error) {
	if err := r.init(); err != nil {
		return transcribe.Recognition{}, err
	}

	if _, err := os.Stat(audioPath); err != nil {
		return transcribe.Recognition{}, fmt.Errorf("failed to stat audio file: %w", err)
	}

	outDir, err := os.MkdirTemp("", "funasr")
	if err != nil {
		return transcribe.Recognition{}, fmt.Errorf("failed to create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		"++model=" + r.cfg.Model,
		"++vad_model=fsmn-vad",
		"++punc_model=ct-punc",
		"++timestamp_model=fa-zh",
		"++device=" + r.device,
		"++input=" + audioPath,
		"++output_dir=" + outDir,
	}
	if r.cfg.Language != "" && r.cfg.Language != "auto" {
		args = append(args, "++language="+r.cfg.Language)
	}

	slog.Debug("running recognition", slog.String("audio", audioPath))

	cmd := exec.CommandContext(ctx, r.bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Error("funasr runner failed", slog.String("output", string(out)))
		return transcribe.Recognition{}, fmt.Errorf("failed to run funasr runner: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	f, err := os.Open(filepath.Join(outDir, stem+".json"))
	if err != nil {
		return transcribe.Recognition{}, fmt.Errorf("failed to open recognition result: %w", err)
	}
	defer f.Close()

	return decodeResult(f)
}

// decodeResult parses the runner's JSON output into a recognition. An
// empty result is a hard failure: there is nothing to segment and no
// recovery path for the request.
func decodeResult(rd io.Reader) (transcribe.Recognition, error) {
	var res result
	if err := json.NewDecoder(rd).Decode(&res); err != nil {
		return transcribe.Recognition{}, fmt.Errorf("failed to decode recognition result: %w", err)
	}

	if res.Text == "" {
		return transcribe.Recognition{}, fmt.Errorf("empty recognition result")
	}

	rec := transcribe.Recognition{
		Text:       res.Text,
		Timestamps: make([][]int64, 0, len(res.Timestamp)),
	}
	for _, ts := range res.Timestamp {
		iv := make([]int64, 0, len(ts))
		for _, v := range ts {
			iv = append(iv, v.IntPart())
		}
		rec.Timestamps = append(rec.Timestamps, iv)
	}

	return rec, nil
}

func (r *Recognizer) Destroy() error {
	return nil
}
