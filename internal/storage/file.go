package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/reviewlens/internal/model"
	"gopkg.in/yaml.v3"
)

// codec converts between the ordered category list and a document.
type codec interface {
	encode(categories []model.Category) ([]byte, error)
	decode(data []byte) ([]model.Category, error)
}

// FileBackend stores categories in a single human-editable document.
type FileBackend struct {
	codec codec
	path  string
}

// NewJSONFile returns a backend that keeps categories in a JSON object of
// name to keyword string, written UTF-8 with two-space indentation.
func NewJSONFile(path string) *FileBackend {
	return &FileBackend{path: path, codec: jsonCodec{}}
}

// NewYAMLFile returns a backend that keeps categories in a YAML mapping.
func NewYAMLFile(path string) *FileBackend {
	return &FileBackend{path: path, codec: yamlCodec{}}
}

// Path returns the file the backend reads and writes.
func (f *FileBackend) Path() string {
	return f.path
}

// Load reads the document. A missing file is an empty mapping.
func (f *FileBackend) Load(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("category file does not exist yet", "path", f.path)
		return []model.Category{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Category{}, nil
	}

	categories, err := f.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return categories, nil
}

// Save replaces the document atomically: it writes a temporary file next to
// the target and renames it into place.
func (f *FileBackend) Save(ctx context.Context, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := f.codec.encode(categories)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write categories: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync categories: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	slog.Debug("saved categories", "path", f.path, "count", len(categories))
	return nil
}

// Close is a no-op for file backends.
func (f *FileBackend) Close() error {
	return nil
}

type jsonCodec struct{}

// encode writes keys in list order. encoding/json would sort map keys.
func (jsonCodec) encode(categories []model.Category) ([]byte, error) {
	if len(categories) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, c := range categories {
		key, err := jsonString(c.Name)
		if err != nil {
			return nil, err
		}
		value, err := jsonString(c.Keywords)
		if err != nil {
			return nil, err
		}

		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(categories)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// jsonString encodes s without HTML escaping; non-ASCII text stays as UTF-8.
func jsonString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", s, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (jsonCodec) decode(data []byte) ([]model.Category, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object of category names, got %v", tok)
	}

	var b listBuilder
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		var keywords *string
		if err := dec.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		b.set(name, keywords)
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return b.list(), nil
}

type yamlCodec struct{}

func (yamlCodec) encode(categories []model.Category) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range categories {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Keywords},
		)
	}
	if len(categories) == 0 {
		doc.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}
	return data, nil
}

func (yamlCodec) decode(data []byte) ([]model.Category, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return []model.Category{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of category names at line %d", root.Line)
	}

	var b listBuilder
	for i := 0; i+1 < len(root.Content); i += 2 {
		var name string
		if err := root.Content[i].Decode(&name); err != nil {
			return nil, fmt.Errorf("line %d: %w", root.Content[i].Line, err)
		}

		var keywords *string
		if err := root.Content[i+1].Decode(&keywords); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		b.set(name, keywords)
	}
	return b.list(), nil
}

// listBuilder collects decoded pairs. A repeated name keeps its first
// position and its last value; a null value is an empty keyword string.
type listBuilder struct {
	index      map[string]int
	categories []model.Category
}

func (b *listBuilder) set(name string, keywords *string) {
	if b.index == nil {
		b.index = make(map[string]int)
	}

	value := ""
	if keywords != nil {
		value = *keywords
	}

	if i, ok := b.index[name]; ok {
		b.categories[i].Keywords = value
		return
	}
	b.index[name] = len(b.categories)
	b.categories = append(b.categories, model.Category{Name: name, Keywords: value})
}

func (b *listBuilder) list() []model.Category {
	if b.categories == nil {
		return []model.Category{}
	}
	return b.categories
}
