// Package config loads basejumper settings from a TOML file.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"basejumper/pkg/form"
	"basejumper/pkg/pipeline"
)

// os
var (
	ex, _  = os.Executable()
	exPath = filepath.Dir(ex)
)

type Pipeline struct {
	Invoker string `toml:"invoker"`
	Script  string `toml:"script"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Form holds the values the form starts with.
type Form struct {
	Basecalling string `toml:"basecalling"`
	Quast       string `toml:"quast"`
	KitName     string `toml:"kit_name"`
	NumBarcodes string `toml:"num_barcodes"`
	Reference   string `toml:"reference_file"`
}

type Config struct {
	Pipeline Pipeline `toml:"pipeline"`
	Server   Server   `toml:"server"`
	Form     Form     `toml:"form"`
}

// Default expects the pipeline script next to the executable.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			Invoker: pipeline.DefaultInvoker,
			Script:  filepath.Join(exPath, pipeline.ScriptName),
		},
		Server: Server{
			Addr: "127.0.0.1:8080",
		},
		Form: Form{
			Basecalling: form.DefaultMode,
			Quast:       form.DefaultQuast,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	var cfg = Default()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// State returns the initial form.
func (cfg Config) State() form.State {
	return form.FromValues(map[string]string{
		form.FieldBasecalling:   cfg.Form.Basecalling,
		form.FieldQuast:         cfg.Form.Quast,
		form.FieldKitName:       cfg.Form.KitName,
		form.FieldNumBarcodes:   cfg.Form.NumBarcodes,
		form.FieldReferenceFile: cfg.Form.Reference,
	})
}

// Runner returns the configured pipeline runner.
func (cfg Config) Runner() pipeline.Runner {
	return pipeline.Runner{
		Invoker: cfg.Pipeline.Invoker,
		Script:  cfg.Pipeline.Script,
	}
}
