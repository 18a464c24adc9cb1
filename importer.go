// Package rasa assembles training-data importer trees from configuration.
//
// The Load functions read the `importers:` list of a training configuration
// file, build each named source adapter through a registry, and compose the
// result: every tree is an E2EImporter wrapping a CombinedImporter wrapping
// the configured sources, optionally restricted by a core-only or NLU-only
// filter. When the configuration names no importers, a single file-based
// importer over the given paths is used.
package rasa

import (
	"errors"
	"fmt"
	"log/slog"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	koanffile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aryaman4/rasa/internal/logging"
	"github.com/aryaman4/rasa/pkg/adapters/file"
	"github.com/aryaman4/rasa/pkg/importers"
	"github.com/aryaman4/rasa/pkg/ports"
	"github.com/aryaman4/rasa/pkg/registry"
)

// configKeyImporters is the configuration key listing importer specifications.
const configKeyImporters = "importers"

// DefaultRegistry returns a registry with the built-in adapters registered.
// Callers may register additional adapters on it before loading.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	r.Register(file.ImporterName, file.Factory)
	return r
}

type loader struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// Option configures the assembly process.
type Option func(*loader)

// WithRegistry replaces the default adapter registry.
func WithRegistry(r *registry.Registry) Option {
	return func(l *loader) {
		l.registry = r
	}
}

// WithLogger sets the logger used during assembly and by the built tree.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// LoadFromConfig builds the full importer tree for the given configuration
// file, optional domain file and optional training-data paths.
func LoadFromConfig(configPath, domainPath string, trainingPaths []string, opts ...Option) (ports.TrainingDataImporter, error) {
	config, err := readConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	return LoadFromConfigMap(config, configPath, domainPath, trainingPaths, opts...)
}

// LoadCoreFromConfig builds an importer tree restricted to dialogue training
// data.
func LoadCoreFromConfig(configPath, domainPath string, trainingPaths []string, opts ...Option) (ports.TrainingDataImporter, error) {
	importer, err := LoadFromConfig(configPath, domainPath, trainingPaths, opts...)
	if err != nil {
		return nil, err
	}
	return importers.NewCoreImporter(importer), nil
}

// LoadNLUFromConfig builds an importer tree restricted to NLU training data.
func LoadNLUFromConfig(configPath, domainPath string, trainingPaths []string, opts ...Option) (ports.TrainingDataImporter, error) {
	importer, err := LoadFromConfig(configPath, domainPath, trainingPaths, opts...)
	if err != nil {
		return nil, err
	}
	return importers.NewNLUImporter(importer), nil
}

// LoadFromConfigMap builds the full importer tree from an already-parsed
// configuration mapping. Importer entries that cannot be resolved are logged
// and skipped; a failing adapter constructor aborts the assembly.
func LoadFromConfigMap(config map[string]any, configPath, domainPath string, trainingPaths []string, opts ...Option) (ports.TrainingDataImporter, error) {
	l := &loader{
		registry: DefaultRegistry(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	var children []ports.TrainingDataImporter
	for _, spec := range importerSpecs(config) {
		name, options := splitSpec(spec)
		if name == "" {
			l.logger.Warn("skipping importer entry without a name")
			continue
		}

		child, err := l.registry.Build(name, registry.Config{
			ConfigPath:    configPath,
			DomainPath:    domainPath,
			TrainingPaths: trainingPaths,
			Options:       options,
		})
		if err != nil {
			if errors.Is(err, registry.ErrUnknownImporter) {
				l.logger.Warn("importer not found, skipping", "name", name)
				continue
			}
			return nil, fmt.Errorf("building importer %s: %w", name, err)
		}
		children = append(children, child)
	}

	if len(children) == 0 {
		children = []ports.TrainingDataImporter{
			file.New(configPath, domainPath, trainingPaths, file.WithLogger(l.logger)),
		}
	}

	combined := importers.NewCombinedImporter(children...)
	return importers.NewE2EImporter(combined, importers.WithLogger(l.logger)), nil
}

// importerSpecs extracts the importer entries from a configuration mapping.
func importerSpecs(config map[string]any) []map[string]any {
	raw, _ := config[configKeyImporters].([]any)
	specs := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if spec, ok := item.(map[string]any); ok {
			specs = append(specs, spec)
		}
	}
	return specs
}

// splitSpec separates an importer entry into its name and the remaining
// adapter-specific options.
func splitSpec(spec map[string]any) (string, map[string]any) {
	name, _ := spec["name"].(string)
	options := make(map[string]any, len(spec))
	for key, value := range spec {
		if key != "name" {
			options[key] = value
		}
	}
	return name, options
}

// readConfigFile reads a YAML training configuration file into a mapping.
func readConfigFile(path string) (map[string]any, error) {
	k := koanf.New(".")
	if err := k.Load(koanffile.Provider(path), koanfyaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return k.Raw(), nil
}
