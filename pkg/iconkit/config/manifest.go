// Package config loads iconkit configuration.
//
// A Manifest declares icons, icon sets and font settings in YAML or JSON so
// an application can register its icon catalog without code:
//
//	default_font_classes: [material-icons]
//	font_aliases:
//	  fa: fontawesome
//	icons:
//	  - name: home
//	    url: https://cdn.example.com/icons/home.svg
//	  - namespace: brand
//	    name: logo
//	    svg: '<svg viewBox="0 0 24 24"><path d="..."/></svg>'
//	sets:
//	  - namespace: core
//	    url: https://cdn.example.com/icons/core-set.svg
//
// Settings carries process-level options read from ICONKIT_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Manifest is a declarative icon catalog.
type Manifest struct {
	Icons              []IconEntry       `yaml:"icons" json:"icons"`
	Sets               []SetEntry        `yaml:"sets" json:"sets"`
	FontAliases        map[string]string `yaml:"font_aliases" json:"font_aliases"`
	DefaultFontClasses []string          `yaml:"default_font_classes" json:"default_font_classes"`
}

// IconEntry registers a single named icon from a URL or inline markup.
type IconEntry struct {
	Namespace string `yaml:"namespace" json:"namespace"`
	Name      string `yaml:"name" json:"name"`
	URL       string `yaml:"url" json:"url"`
	SVG       string `yaml:"svg" json:"svg"`
}

// SetEntry registers an icon set from a URL or inline markup.
type SetEntry struct {
	Namespace string `yaml:"namespace" json:"namespace"`
	URL       string `yaml:"url" json:"url"`
	SVG       string `yaml:"svg" json:"svg"`
}

// Sentinel errors for manifest validation.
var (
	// ErrMissingName indicates an icon entry without a name.
	ErrMissingName = errors.New("icon entry missing name")

	// ErrSourceRequired indicates an entry with neither url nor svg.
	ErrSourceRequired = errors.New("entry needs exactly one of url or svg")
)

// EntryError identifies the manifest entry that failed validation.
type EntryError struct {
	// Kind is "icon" or "set".
	Kind string
	// Index is the entry's position in its list.
	Index int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s entry %d: %v", e.Kind, e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// Validate checks that every entry is well formed.
// All problems are reported, joined.
func (m Manifest) Validate() error {
	var errs []error
	for i, icon := range m.Icons {
		if strings.TrimSpace(icon.Name) == "" {
			errs = append(errs, &EntryError{Kind: "icon", Index: i, Err: ErrMissingName})
		}
		if !exactlyOne(icon.URL, icon.SVG) {
			errs = append(errs, &EntryError{Kind: "icon", Index: i, Err: ErrSourceRequired})
		}
	}
	for i, set := range m.Sets {
		if !exactlyOne(set.URL, set.SVG) {
			errs = append(errs, &EntryError{Kind: "set", Index: i, Err: ErrSourceRequired})
		}
	}
	return errors.Join(errs...)
}

func exactlyOne(a, b string) bool {
	return (strings.TrimSpace(a) == "") != (strings.TrimSpace(b) == "")
}
