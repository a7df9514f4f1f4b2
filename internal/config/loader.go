package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceBuiltin SourceKind = "builtin"
	SourceFile    SourceKind = "file"
	SourceEnv     SourceKind = "env"
)

type Source struct {
	Kind   SourceKind
	Name   string // preset name for builtin, variable name for env
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config       *Config
	Sources      map[string]Source // YAML-path -> last writer source
	GeometryBase string            // builtin geometry preset the result derives from
	Files        []string          // all loaded files, in load order
}

// Load reads the merged configuration from the standard location and returns an
// effective config ready for the desktop.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads config and returns sources for introspection.
// $DESKOS_CONFIG replaces the standard path.
func LoadWithSources() (*LoadResult, error) {
	path, err := ResolveConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// ResolveConfigPath returns $DESKOS_CONFIG when set, otherwise the standard
// location.
func ResolveConfigPath() (string, error) {
	overrides, err := readEnv()
	if err != nil {
		return "", err
	}
	if overrides.ConfigPath != "" {
		return overrides.ConfigPath, nil
	}
	return DefaultConfigPath()
}

// LoadFromPath loads path (when it exists) plus its includes, then applies
// environment overrides. A missing file yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	var acc layer

	if _, err := os.Stat(path); err == nil {
		w := includeWalker{seen: map[string]bool{}}
		fileLayer, err := w.load(path, nil)
		if err != nil {
			return nil, err
		}
		acc.apply(fileLayer)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	overrides, err := readEnv()
	if err != nil {
		return nil, err
	}
	envRaw, envSources := overrides.raw()
	acc.apply(layer{raw: envRaw, sources: envSources})

	cfg, base, err := BuildEffectiveConfig(acc.raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, withSource(err, acc.sources)
	}

	return &LoadResult{
		Config:       cfg,
		Sources:      acc.sources,
		GeometryBase: base,
		Files:        acc.files,
	}, nil
}

// layer is one or more config files merged together, with the file each key
// was last written by.
type layer struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
}

// apply merges top over l; top wins key by key.
func (l *layer) apply(top layer) {
	l.raw = l.raw.merge(top.raw)
	if l.sources == nil {
		l.sources = make(map[string]Source, len(top.sources))
	}
	maps.Copy(l.sources, top.sources)
	l.files = append(l.files, top.files...)
}

// includeWalker loads a file after everything it includes, depth first.
type includeWalker struct {
	seen map[string]bool
}

func (w *includeWalker) load(path string, chain []string) (layer, error) {
	canon, err := canonicalPath(path)
	if err != nil {
		return layer{}, err
	}
	if slices.Contains(chain, canon) {
		return layer{}, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(chain, " -> "), canon)
	}
	if w.seen[canon] {
		// Reached twice through different includes; the first one counts.
		return layer{}, nil
	}
	w.seen[canon] = true

	data, err := os.ReadFile(canon)
	if err != nil {
		return layer{}, fmt.Errorf("%s: failed to read: %w", canon, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return layer{}, fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}
	var raw RawConfig
	if err := decodeStrict(data, &raw); err != nil {
		return layer{}, fmt.Errorf("%s: %w", canon, err)
	}

	root := documentRoot(&doc)
	var out layer
	for _, ref := range includeRefs(root, canon) {
		targets, err := expandInclude(canon, ref.value)
		if err != nil {
			return layer{}, fmt.Errorf("%s: include %q: %w", ref.at, ref.value, err)
		}
		for _, target := range targets {
			inc, err := w.load(target, append(chain, canon))
			if err != nil {
				return layer{}, err
			}
			out.apply(inc)
		}
	}

	own := layer{raw: raw, sources: map[string]Source{}, files: []string{canon}}
	recordSources(root, canon, "", own.sources)
	out.apply(own)
	return out, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// expandInclude resolves an include value against the including file. A
// directory expands to its *.yaml and *.yml files in name order.
func expandInclude(from, include string) ([]string, error) {
	if include == "" {
		return nil, fmt.Errorf("path is empty")
	}
	path := include
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(from), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			if !ent.IsDir() {
				files = append(files, filepath.Join(path, ent.Name()))
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

func nodeSource(file string, n *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
}

// recordSources maps every dotted key path under node to where its value is
// written. Sequences are recorded as a whole.
func recordSources(node *yaml.Node, file, prefix string, out map[string]Source) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if prefix != "" {
			key = prefix + "." + key
		}
		out[key] = nodeSource(file, val)
		recordSources(val, file, key, out)
	}
}

type includeRef struct {
	value string
	at    string // file:line:col of the value
}

// includeRefs reads the top-level include key, a string or a list of strings.
func includeRefs(root *yaml.Node, file string) []includeRef {
	if root == nil || root.Kind != yaml.MappingNode {
		return nil
	}
	ref := func(n *yaml.Node) includeRef {
		return includeRef{value: n.Value, at: fmt.Sprintf("%s:%d:%d", file, n.Line, n.Column)}
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "include" {
			continue
		}
		val := root.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			return []includeRef{ref(val)}
		case yaml.SequenceNode:
			var refs []includeRef
			for _, item := range val.Content {
				if item.Kind == yaml.ScalarNode {
					refs = append(refs, ref(item))
				}
			}
			return refs
		}
		return nil
	}
	return nil
}

// withSource attaches the file position of a failing key to a ValidationError.
func withSource(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}
