// Package locale loads translated UI messages and resolves them per request.
package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Catalog wraps a message bundle. English is the source language and is
// always available through each message's default text.
type Catalog struct {
	bundle *i18n.Bundle
}

// NewCatalog creates a catalog and loads every *.toml file in dir. An empty
// dir yields an English-only catalog.
func NewCatalog(dir string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	c := &Catalog{bundle: bundle}
	if dir == "" {
		return c, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list locale files: %w", err)
	}
	sort.Strings(files)
	for _, f := range files {
		if _, err := bundle.LoadMessageFile(f); err != nil {
			return nil, fmt.Errorf("failed to load locale file %s: %w", f, err)
		}
	}
	return c, nil
}

// AddMessages registers translations for one language in code, mostly for
// tests and embedded defaults.
func (c *Catalog) AddMessages(lang string, messages ...*i18n.Message) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	return c.bundle.AddMessages(tag, messages...)
}

// Languages lists the languages with loaded translations.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	return out
}

// Localizer resolves messages for the given preferences, e.g. the raw
// Accept-Language header followed by a fallback language.
func (c *Catalog) Localizer(langs ...string) *Localizer {
	return &Localizer{l: i18n.NewLocalizer(c.bundle, langs...)}
}

// Localizer renders messages in one preferred language.
type Localizer struct {
	l *i18n.Localizer
}

// English returns a localizer with no translations loaded.
func English() *Localizer {
	return &Localizer{}
}

// T renders msg with optional template data. When the message has no
// translation, or localization fails, the English default is used.
func (l *Localizer) T(msg *i18n.Message, data map[string]interface{}) string {
	if l != nil && l.l != nil {
		// go-i18n may return the default text together with a
		// MessageNotFoundErr, so only an empty result counts as a miss.
		out, _ := l.l.Localize(&i18n.LocalizeConfig{
			DefaultMessage: msg,
			TemplateData:   data,
		})
		if out != "" {
			return out
		}
	}
	return fallback(msg, data)
}

func fallback(msg *i18n.Message, data map[string]interface{}) string {
	out := msg.Other
	for k, v := range data {
		out = strings.ReplaceAll(out, "{{."+k+"}}", fmt.Sprint(v))
	}
	return out
}

// Exists reports whether a directory of locale files is present.
func Exists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
