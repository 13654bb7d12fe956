package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"gopkg.in/yaml.v2"
)

// SourceFile is the base name of the file that holds the source strings.
const SourceFile = "source"

// NewYaml creates a new instance of the YAML translation-file parser.
// It reads `<checkout>/locale/<language>.yml` files where each file is a flat
// key to text mapping; `source.yml` holds the source strings.
func NewYaml(reposDir model.FilePath) Service {
	return Yaml{reposDir: string(reposDir)}
}

// Yaml implements the parser for YAML translation files.
type Yaml struct {
	reposDir string
}

// Load parses the translation files of the component into units.
func (p Yaml) Load(ctx context.Context, c model.Component) ([]model.Unit, error) {
	dir := filepath.Join(p.reposDir, c.ProjectSlug, c.Slug, "locale")
	paths, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{
			Path:   "service.parser.yaml.Load: glob",
			Params: errors.Params{"component": c.ID},
		})
	}
	sort.Strings(paths)
	sources := make(map[string]string)
	units := make([]model.Unit, 0)
	for _, path := range paths {
		lang := strings.TrimSuffix(filepath.Base(path), ".yml")
		entries, err := p.readFile(path)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{
				Path:   "service.parser.yaml.Load: read",
				Params: errors.Params{"component": c.ID, "file": path},
			})
		}
		if lang == SourceFile {
			for key, text := range entries {
				sources[key] = text
			}
			continue
		}
		for key, text := range entries {
			units = append(units, model.Unit{
				ComponentID: c.ID,
				Language:    lang,
				IDHash:      key,
				Target:      text,
				Translated:  text != "",
			})
		}
	}
	for key, text := range sources {
		units = append(units, model.Unit{
			ComponentID: c.ID,
			IDHash:      key,
			Source:      text,
		})
	}
	for i := range units {
		if units[i].Language != "" {
			units[i].Source = sources[units[i].IDHash]
		}
	}
	return units, nil
}

// readFile decodes one translation file into its flat key to text mapping.
// Anything that is not such a mapping is a parse failure.
func (p Yaml) readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries map[string]string
	err = yaml.Unmarshal(data, &entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrParse, err)
	}
	return entries, nil
}
