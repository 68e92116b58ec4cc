// Package site holds storefront metadata that is not part of the catalog:
// page titles and the wording of error pages.
package site

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultDocument []byte

type Meta struct {
	Name         string            `yaml:"name"`
	DefaultTitle string            `yaml:"default_title"`
	Titles       map[string]string `yaml:"titles"`
	Errors       ErrorMeta         `yaml:"errors"`
}

type ErrorMeta struct {
	DefaultTitle    string         `yaml:"default_title"`
	DefaultMessage  string         `yaml:"default_message"`
	DefaultPath     string         `yaml:"default_path"`
	NotFoundTitle   string         `yaml:"not_found_title"`
	NotFoundMessage string         `yaml:"not_found_message"`
	Titles          map[int]string `yaml:"titles"`
}

// Default returns the metadata shipped with the binary.
func Default() (*Meta, error) {
	return Parse(defaultDocument)
}

// Parse decodes a site document and fills any blank fields with fallbacks.
func Parse(doc []byte) (*Meta, error) {
	var m Meta
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("site: failed to parse metadata: %w", err)
	}
	if m.Name == "" {
		m.Name = "Full Stock"
	}
	if m.DefaultTitle == "" {
		m.DefaultTitle = m.Name
	}
	if m.Titles == nil {
		m.Titles = map[string]string{}
	}
	if m.Errors.DefaultTitle == "" {
		m.Errors.DefaultTitle = "Error"
	}
	if m.Errors.DefaultMessage == "" {
		m.Errors.DefaultMessage = "An unexpected problem occurred"
	}
	if m.Errors.DefaultPath == "" {
		m.Errors.DefaultPath = "/"
	}
	if m.Errors.Titles == nil {
		m.Errors.Titles = map[int]string{}
	}
	return &m, nil
}

// PageTitle returns the title for an exact request path.
func (m *Meta) PageTitle(path string) string {
	if t, ok := m.Titles[path]; ok {
		return t
	}
	return m.DefaultTitle
}

// ErrorTitle renders "<status> - <title>".
func (m *Meta) ErrorTitle(status int) string {
	t, ok := m.Errors.Titles[status]
	if !ok {
		t = m.Errors.DefaultTitle
	}
	return strconv.Itoa(status) + " - " + t
}

// NotFoundTitle is the heading used for unknown routes.
func (m *Meta) NotFoundTitle() string {
	return "404 - " + m.Errors.NotFoundTitle
}
