// Package file implements the file-based source adapter: it reads the
// training configuration, the domain definition and YAML training-data files
// from disk and exposes them through the importer contract.
//
// Training-data files are discovered from the configured paths (plain files,
// directories or doublestar glob patterns) and classified by content: a file
// with a top-level "stories" key contributes dialogue data, a file with a
// top-level "nlu" key contributes NLU examples. One file may carry both.
package file

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	koanffile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aryaman4/rasa/internal/logging"
	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
	"github.com/aryaman4/rasa/pkg/registry"
)

// ImporterName is the identifier under which this adapter is registered.
const ImporterName = "FileImporter"

var yamlExtensions = map[string]bool{".yml": true, ".yaml": true}

// Importer is the file-based source adapter.
type Importer struct {
	configPath    string
	domainPath    string
	trainingPaths []string

	defaultLanguage string
	globs           []string
	logger          *slog.Logger
}

var _ ports.TrainingDataImporter = (*Importer)(nil)

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithDefaultLanguage sets the language assumed for NLU files that carry no
// language tag of their own. Defaults to "en".
func WithDefaultLanguage(language string) Option {
	return func(i *Importer) {
		i.defaultLanguage = language
	}
}

// WithGlobs adds extra training-data glob patterns beyond the configured paths.
func WithGlobs(globs ...string) Option {
	return func(i *Importer) {
		i.globs = globs
	}
}

// New creates a file-based importer. configPath may be empty, in which case
// Config returns an empty mapping; a missing domain file yields the empty
// domain rather than an error.
func New(configPath, domainPath string, trainingPaths []string, opts ...Option) *Importer {
	i := &Importer{
		configPath:      configPath,
		domainPath:      domainPath,
		trainingPaths:   trainingPaths,
		defaultLanguage: "en",
		logger:          logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// adapterOptions is the mapstructure shape of the adapter-specific keys of an
// importer configuration entry. Unknown keys are ignored.
type adapterOptions struct {
	DefaultLanguage string   `mapstructure:"default_language"`
	Globs           []string `mapstructure:"globs"`
}

// Factory builds an Importer from a registry configuration.
func Factory(cfg registry.Config) (ports.TrainingDataImporter, error) {
	var decoded adapterOptions
	if err := mapstructure.Decode(cfg.Options, &decoded); err != nil {
		return nil, fmt.Errorf("decoding %s options: %w", ImporterName, err)
	}

	opts := []Option{}
	if decoded.DefaultLanguage != "" {
		opts = append(opts, WithDefaultLanguage(decoded.DefaultLanguage))
	}
	if len(decoded.Globs) > 0 {
		opts = append(opts, WithGlobs(decoded.Globs...))
	}
	return New(cfg.ConfigPath, cfg.DomainPath, cfg.TrainingPaths, opts...), nil
}

// dataFile is one discovered training-data file with its parsed YAML document.
type dataFile struct {
	path string
	doc  map[string]any
}

// resolveDataPaths expands the configured paths and globs into a sorted,
// deduplicated list of YAML files.
func (i *Importer) resolveDataPaths() ([]string, error) {
	patterns := make([]string, 0, len(i.trainingPaths)+len(i.globs))
	patterns = append(patterns, i.trainingPaths...)
	patterns = append(patterns, i.globs...)

	seen := map[string]struct{}{}
	var files []string
	add := func(path string) {
		if !yamlExtensions[strings.ToLower(filepath.Ext(path))] {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		switch {
		case err == nil && info.IsDir():
			walkErr := filepath.WalkDir(pattern, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					add(path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, fmt.Errorf("walking %s: %w", pattern, walkErr)
			}
		case err == nil:
			add(pattern)
		default:
			matches, globErr := doublestar.FilepathGlob(pattern)
			if globErr != nil {
				return nil, fmt.Errorf("expanding %s: %w", pattern, globErr)
			}
			if len(matches) == 0 {
				i.logger.Warn("training data path matched nothing", "path", pattern)
			}
			for _, match := range matches {
				add(match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// loadDataFiles reads and parses all training-data files, substituting the
// given template variables into the raw content first. Files that are not a
// YAML mapping are skipped with a warning.
func (i *Importer) loadDataFiles(variables map[string]string) ([]dataFile, error) {
	paths, err := i.resolveDataPaths()
	if err != nil {
		return nil, err
	}

	var files []dataFile
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		raw = substituteVariables(raw, variables)

		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if doc == nil {
			i.logger.Warn("skipping training data file: not a YAML mapping", "path", path)
			continue
		}
		files = append(files, dataFile{path: path, doc: doc})
	}
	return files, nil
}

// substituteVariables replaces `{name}` placeholders in raw file content.
func substituteVariables(raw []byte, variables map[string]string) []byte {
	for name, value := range variables {
		raw = bytes.ReplaceAll(raw, []byte("{"+name+"}"), []byte(value))
	}
	return raw
}

// Config implements ports.TrainingDataImporter. With no configured path it
// returns an empty mapping.
func (i *Importer) Config(ctx context.Context) (map[string]any, error) {
	if i.configPath == "" {
		return map[string]any{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(koanffile.Provider(i.configPath), koanfyaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", i.configPath, err)
	}
	return k.Raw(), nil
}

// Domain implements ports.TrainingDataImporter. A missing or unconfigured
// domain file yields the empty domain.
func (i *Importer) Domain(ctx context.Context) (*domain.Domain, error) {
	if i.domainPath == "" {
		return domain.Empty(), nil
	}

	raw, err := os.ReadFile(i.domainPath)
	if err != nil {
		if os.IsNotExist(err) {
			i.logger.Warn("domain file does not exist, using empty domain", "path", i.domainPath)
			return domain.Empty(), nil
		}
		return nil, fmt.Errorf("reading domain %s: %w", i.domainPath, err)
	}

	var d domain.Domain
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing domain %s: %w", i.domainPath, err)
	}
	return &d, nil
}

// Stories implements ports.TrainingDataImporter.
func (i *Importer) Stories(ctx context.Context, opts ports.StoryOptions) (*domain.StoryGraph, error) {
	if opts.ExclusionPercentage < 0 || opts.ExclusionPercentage > 100 {
		return nil, fmt.Errorf("exclusion percentage %d out of range [0, 100]", opts.ExclusionPercentage)
	}

	files, err := i.loadDataFiles(opts.TemplateVariables)
	if err != nil {
		return nil, err
	}

	graph := domain.EmptyStoryGraph()
	for _, f := range files {
		if _, ok := f.doc[keyStories]; !ok {
			continue
		}
		steps, err := readStories(ctx, f.path, f.doc, opts, i.logger)
		if err != nil {
			return nil, err
		}
		graph = graph.Merge(domain.NewStoryGraph(steps...))
	}

	return excludeSteps(graph, opts.ExclusionPercentage, i.logger), nil
}

// excludeSteps drops the configured share of steps from the end of the graph.
func excludeSteps(graph *domain.StoryGraph, percentage int, logger *slog.Logger) *domain.StoryGraph {
	if percentage == 0 || graph.IsEmpty() {
		return graph
	}
	keep := len(graph.Steps) - len(graph.Steps)*percentage/100
	logger.Debug("excluding story steps for evaluation",
		"total", len(graph.Steps), "kept", keep)
	return domain.NewStoryGraph(graph.Steps[:keep]...)
}

// NLUData implements ports.TrainingDataImporter. A non-empty language keeps
// only files whose language tag (or the adapter default, when untagged)
// matches.
func (i *Importer) NLUData(ctx context.Context, language string) (*domain.TrainingData, error) {
	files, err := i.loadDataFiles(nil)
	if err != nil {
		return nil, err
	}

	data := domain.NewTrainingData()
	for _, f := range files {
		if _, ok := f.doc[keyNLU]; !ok {
			continue
		}
		fileLanguage, _ := f.doc[keyLanguage].(string)
		if fileLanguage == "" {
			fileLanguage = i.defaultLanguage
		}
		if language != "" && fileLanguage != language {
			i.logger.Debug("skipping NLU file for other language",
				"path", f.path, "language", fileLanguage)
			continue
		}

		messages, err := readNLU(f.path, f.doc, i.logger)
		if err != nil {
			return nil, err
		}
		data = data.Merge(domain.NewTrainingData(messages...))
	}
	return data, nil
}
