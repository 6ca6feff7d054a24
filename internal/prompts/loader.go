// Package prompts holds the embedded prompt templates sent to remote text checkers.
// Each JSON file maps a prompt key to a text/template body; every file is parsed once.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// Set is the parsed contents of one prompt file
type Set struct {
	file      string
	raw       map[string]string
	templates map[string]*template.Template
}

var (
	loadOnce sync.Once
	sets     map[string]*Set
	loadErr  error
)

func load() (map[string]*Set, error) {
	loadOnce.Do(func() {
		sets, loadErr = parseAll(promptFiles)
	})
	return sets, loadErr
}

func parseAll(fsys fs.FS) (map[string]*Set, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Set, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		set, err := parseSet(name, data)
		if err != nil {
			return nil, err
		}
		out[name] = set
	}
	return out, nil
}

func parseSet(file string, data []byte) (*Set, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}
	set := &Set{file: file, raw: raw, templates: make(map[string]*template.Template, len(raw))}
	for key, body := range raw {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt %s in %s: %w", key, file, err)
		}
		set.templates[key] = tmpl
	}
	return set, nil
}

// Open returns the parsed prompt file, e.g. "textcheck.json"
func Open(file string) (*Set, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	set, ok := all[file]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", file)
	}
	return set, nil
}

// Keys lists the prompt keys in sorted order
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.raw))
	for k := range s.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the unrendered template body
func (s *Set) Raw(key string) (string, bool) {
	body, ok := s.raw[key]
	return body, ok
}

// Render executes the prompt with data. Every placeholder the prompt uses must be
// present in data.
func (s *Set) Render(key string, data map[string]string) (string, error) {
	tmpl, ok := s.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, s.file)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", key, err)
	}
	return b.String(), nil
}

// Render opens file and renders key
func Render(file, key string, data map[string]string) (string, error) {
	set, err := Open(file)
	if err != nil {
		return "", err
	}
	return set.Render(key, data)
}
