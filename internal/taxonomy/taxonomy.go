package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"semcat/internal/models"
)

//go:embed default.yaml
var defaultTables []byte

// CategoryRule maps a category id to its trigger phrases.
type CategoryRule struct {
	ID       string   `yaml:"id"`
	Triggers []string `yaml:"triggers"`
}

// NarrativeRule maps a narrative label to the substrings that select it.
type NarrativeRule struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

type HierarchyEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type tablesFile struct {
	Categories []CategoryRule `yaml:"categories"`
	Sentiment  struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"sentiment"`
	Stopwords  []string         `yaml:"stopwords"`
	Narratives []NarrativeRule  `yaml:"narratives"`
	Hierarchy  []HierarchyEntry `yaml:"hierarchy"`
}

// Tables is the read-only configuration shared by every classification call.
// Accessors return copies so callers cannot mutate the loaded tables.
type Tables struct {
	categories []CategoryRule
	positive   []string
	negative   []string
	stopwords  map[string]struct{}
	narratives []NarrativeRule
	hierarchy  []HierarchyEntry
}

// Default returns the built-in tables. It panics only if the embedded file is
// malformed, which the package tests rule out.
func Default() *Tables {
	t, err := Parse(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: embedded tables invalid: %v", err))
	}
	return t
}

// Load reads tables from path. An empty path yields the built-in tables.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML tables document.
func Parse(data []byte) (*Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", models.ErrValidation)
	}
	if len(f.Narratives) == 0 {
		return nil, fmt.Errorf("%w: no narratives defined", models.ErrValidation)
	}
	for _, c := range f.Categories {
		if c.ID == "" || len(c.Triggers) == 0 {
			return nil, fmt.Errorf("%w: category %q needs an id and triggers", models.ErrValidation, c.ID)
		}
	}
	for _, h := range f.Hierarchy {
		if h.ID == "" || h.Name == "" {
			return nil, fmt.Errorf("%w: hierarchy entry %q needs an id and a name", models.ErrValidation, h.ID)
		}
	}
	if len(f.Hierarchy) == 0 {
		h, err := defaultHierarchy()
		if err != nil {
			return nil, err
		}
		f.Hierarchy = h
	}

	t := &Tables{
		categories: f.Categories,
		positive:   lowerAll(f.Sentiment.Positive),
		negative:   lowerAll(f.Sentiment.Negative),
		stopwords:  make(map[string]struct{}, len(f.Stopwords)),
		narratives: f.Narratives,
		hierarchy:  f.Hierarchy,
	}
	for _, w := range f.Stopwords {
		t.stopwords[strings.ToLower(w)] = struct{}{}
	}
	return t, nil
}

// defaultHierarchy reads the root categories of the embedded tables. Files
// without a hierarchy section inherit them.
func defaultHierarchy() ([]HierarchyEntry, error) {
	var f tablesFile
	if err := yaml.Unmarshal(defaultTables, &f); err != nil {
		return nil, fmt.Errorf("embedded hierarchy: %w", err)
	}
	return f.Hierarchy, nil
}

func (t *Tables) Categories() []CategoryRule {
	out := make([]CategoryRule, len(t.categories))
	for i, c := range t.categories {
		out[i] = CategoryRule{ID: c.ID, Triggers: append([]string(nil), c.Triggers...)}
	}
	return out
}

func (t *Tables) PositiveWords() []string { return append([]string(nil), t.positive...) }
func (t *Tables) NegativeWords() []string { return append([]string(nil), t.negative...) }

func (t *Tables) IsStopWord(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

func (t *Tables) Narratives() []NarrativeRule {
	out := make([]NarrativeRule, len(t.narratives))
	for i, n := range t.narratives {
		out[i] = NarrativeRule{Name: n.Name, Terms: append([]string(nil), n.Terms...)}
	}
	return out
}

// Hierarchy returns the static root categories, each at full confidence.
func (t *Tables) Hierarchy() []models.Category {
	out := make([]models.Category, len(t.hierarchy))
	for i, h := range t.hierarchy {
		out[i] = models.Category{ID: h.ID, Name: h.Name, Confidence: 1.0}
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
