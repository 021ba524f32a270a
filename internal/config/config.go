// Package config loads the stone-format settings.
//
// Settings come, in increasing priority, from defaults, a YAML config file, STONE_FORMAT_*
// environment variables and command-line flags bound to the viper instance.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultMatrixInput  = "utils/input.txt"
	DefaultMatrixOutput = "utils/output.json"
	DefaultMovesInput   = "outputs/final_pt_1.result.json"
	DefaultMovesOutput  = "formatted_results/output1.txt"

	// EnvPrefix prefixes the environment variables, e.g. STONE_FORMAT_MOVES_INPUT.
	EnvPrefix = "STONE_FORMAT"
	// Name is the config file name without extension.
	Name = "stone-format"
)

const (
	KeyMatrixInput  = "matrix.input"
	KeyMatrixOutput = "matrix.output"
	KeyMovesInput   = "moves.input"
	KeyMovesOutput  = "moves.output"
	KeyMeasure      = "measure"
	KeyGraphDir     = "graph_dir"
	KeyVerbose      = "verbose"
)

var ErrEmptyPath = errors.New("path must be set")

// Paths holds the input and output files of a conversion.
type Paths struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Config holds the settings of every command.
type Config struct {
	// Matrix holds the grid text and JSON document paths.
	Matrix Paths `mapstructure:"matrix" yaml:"matrix"`
	// Moves holds the solver result and move sequence paths.
	Moves Paths `mapstructure:"moves" yaml:"moves"`
	// Measure logs the average duration of every pipeline step.
	Measure bool `mapstructure:"measure" yaml:"measure"`
	// GraphDir receives a Graphviz DOT file per conversion when set.
	GraphDir string `mapstructure:"graph_dir" yaml:"graph_dir,omitempty"`
	// Verbose enables debug logs.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// SetDefaults registers the default settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMatrixInput, DefaultMatrixInput)
	v.SetDefault(KeyMatrixOutput, DefaultMatrixOutput)
	v.SetDefault(KeyMovesInput, DefaultMovesInput)
	v.SetDefault(KeyMovesOutput, DefaultMovesOutput)
	v.SetDefault(KeyMeasure, false)
	v.SetDefault(KeyGraphDir, "")
	v.SetDefault(KeyVerbose, false)
}

// ReadInConfig reads cfgFile, or stone-format.yaml from the working directory or
// ~/.config/stone-format when cfgFile is empty, and enables the environment overrides.
// A missing default config file is not an error. It returns the file used, if any.
func ReadInConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}

		return "", errors.Wrap(err, "unable to read config")
	}

	return v.ConfigFileUsed(), nil
}

// Load returns the settings of v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to decode config")
	}

	for key, path := range map[string]string{
		KeyMatrixInput:  cfg.Matrix.Input,
		KeyMatrixOutput: cfg.Matrix.Output,
		KeyMovesInput:   cfg.Moves.Input,
		KeyMovesOutput:  cfg.Moves.Output,
	} {
		if path == "" {
			return Config{}, errors.Wrap(ErrEmptyPath, key)
		}
	}

	return cfg, nil
}
