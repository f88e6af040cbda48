// Package prompts holds the LLM prompt templates, embedded as JSON files keyed by prompt name.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// files caches parsed prompt files by name
var files sync.Map // map[string]map[string]string

var placeholderRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// Get returns the template stored under key in filename (for example "extraction.json")
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for templates required at startup; it panics when missing
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format substitutes {{.Name}} placeholders from data. Placeholders without a
// value are left untouched.
func Format(template string, data map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(ph string) string {
		name := placeholderRe.FindStringSubmatch(ph)[1]
		if v, ok := data[name]; ok {
			return v
		}
		return ph
	})
}

// Render loads and fills a template, failing when any placeholder stays unfilled
func Render(filename, key string, data map[string]string) (string, error) {
	tmpl, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	out := Format(tmpl, data)
	missing := placeholderRe.FindAllStringSubmatch(out, -1)
	if len(missing) == 0 {
		return out, nil
	}
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m[1]
	}
	return "", fmt.Errorf("prompt %s/%s has unfilled placeholders: %s", filename, key, strings.Join(names, ", "))
}

func load(filename string) (map[string]string, error) {
	if cached, ok := files.Load(filename); ok {
		return cached.(map[string]string), nil
	}
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	actual, _ := files.LoadOrStore(filename, templates)
	return actual.(map[string]string), nil
}

// ClearCache forgets every parsed file so the next Get re-reads it
func ClearCache() {
	files.Range(func(k, _ any) bool {
		files.Delete(k)
		return true
	})
}
