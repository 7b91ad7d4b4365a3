package iconkit

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/randalmurphal/iconkit/pkg/iconkit/config"
)

// ApplyManifest registers everything a manifest declares: font settings
// first, then icons and sets in manifest order.
//
// Entries whose inline markup is rejected are skipped; their errors are
// joined and returned after the rest of the manifest has been applied.
//
// Example:
//
//	m, err := config.FromFile("icons.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := reg.ApplyManifest(m); err != nil {
//	    return err
//	}
func (r *Registry) ApplyManifest(m config.Manifest) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	for _, alias := range slices.Sorted(maps.Keys(m.FontAliases)) {
		r.RegisterFontAlias(alias, m.FontAliases[alias])
	}
	if len(m.DefaultFontClasses) > 0 {
		r.SetDefaultFontClasses(m.DefaultFontClasses...)
	}

	var errs []error
	for i, icon := range m.Icons {
		if strings.TrimSpace(icon.URL) != "" {
			r.RegisterByURL(icon.Namespace, icon.Name, icon.URL)
			continue
		}
		if _, err := r.RegisterByMarkup(icon.Namespace, icon.Name, icon.SVG); err != nil {
			errs = append(errs, &config.EntryError{Kind: "icon", Index: i, Err: err})
		}
	}
	for i, set := range m.Sets {
		if strings.TrimSpace(set.URL) != "" {
			r.RegisterSetByURL(set.Namespace, set.URL)
			continue
		}
		if _, err := r.RegisterSetByMarkup(set.Namespace, set.SVG); err != nil {
			errs = append(errs, &config.EntryError{Kind: "set", Index: i, Err: err})
		}
	}
	return errors.Join(errs...)
}
