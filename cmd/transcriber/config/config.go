package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/podscribe/podcast-transcriber/cmd/transcriber/transcribe"
)

const (
	// defaults
	ModelDefault     = ModelParaformerZH
	DeviceDefault    = DeviceAuto
	LanguageDefault  = "zh"
	OutputDirDefault = "transcripts"
)

type ModelID string

const (
	ModelParaformerZH    ModelID = "paraformer-zh"
	ModelSenseVoiceSmall ModelID = "SenseVoiceSmall"
)

func (m ModelID) IsValid() bool {
	switch m {
	case ModelParaformerZH, ModelSenseVoiceSmall:
		return true
	default:
		return false
	}
}

type Device string

const (
	DeviceAuto Device = "auto"
	DeviceCPU  Device = "cpu"
	DeviceMPS  Device = "mps"
)

func (d Device) IsValid() bool {
	switch d {
	case DeviceAuto, DeviceCPU, DeviceMPS:
		return true
	default:
		// CUDA devices carry an ordinal (e.g. cuda:0).
		return strings.HasPrefix(string(d), "cuda")
	}
}

type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatSRT  OutputFormat = "srt"
)

func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatJSON, OutputFormatSRT:
		return true
	default:
		return false
	}
}

type TranscriberConfig struct {
	// input config
	Model    ModelID
	Device   Device
	Language string

	// output config
	OutputDir     string
	OutputFormats []OutputFormat
	StorePath     string

	SegmentOpts transcribe.SegmentOptions
}

func (cfg TranscriberConfig) IsValid() error {
	if !cfg.Model.IsValid() {
		return fmt.Errorf("Model value is not valid")
	}

	if !cfg.Device.IsValid() {
		return fmt.Errorf("Device value is not valid")
	}

	if cfg.Language == "" {
		return fmt.Errorf("Language cannot be empty")
	}

	if cfg.OutputDir == "" {
		return fmt.Errorf("OutputDir cannot be empty")
	}

	if len(cfg.OutputFormats) == 0 {
		return fmt.Errorf("OutputFormats cannot be empty")
	}
	for _, f := range cfg.OutputFormats {
		if !f.IsValid() {
			return fmt.Errorf("OutputFormat value is not valid")
		}
	}

	return cfg.SegmentOpts.IsValid()
}

func (cfg *TranscriberConfig) SetDefaults() {
	if cfg.Model == "" {
		cfg.Model = ModelDefault
	}
	if cfg.Device == "" {
		cfg.Device = DeviceDefault
	}
	if cfg.Language == "" {
		cfg.Language = LanguageDefault
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = OutputDirDefault
	}
	if len(cfg.OutputFormats) == 0 {
		cfg.OutputFormats = []OutputFormat{OutputFormatJSON, OutputFormatSRT}
	}
	cfg.SegmentOpts.SetDefaults()
}

func FromEnv() (TranscriberConfig, error) {
	var cfg TranscriberConfig

	if val := os.Getenv("MODEL"); val != "" {
		cfg.Model = ModelID(val)
	}
	if val := os.Getenv("DEVICE"); val != "" {
		cfg.Device = Device(val)
	}
	cfg.Language = os.Getenv("LANGUAGE")
	cfg.OutputDir = os.Getenv("OUTPUT_DIR")
	cfg.StorePath = os.Getenv("STORE_PATH")

	if val := os.Getenv("OUTPUT_FORMATS"); val != "" {
		for _, f := range strings.Split(val, ",") {
			cfg.OutputFormats = append(cfg.OutputFormats, OutputFormat(strings.TrimSpace(f)))
		}
	}

	cfg.SegmentOpts.FromEnv()

	return cfg, nil
}
