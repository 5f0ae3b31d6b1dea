// Package i18n resolves user-facing messages by key and language
package i18n

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// Catalog holds messages per language. The first language loaded is the fallback.
type Catalog struct {
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
	fallback language.Tag
}

// Default returns the catalog bundled with the service
func Default() *Catalog {
	c, err := Load(defaultMessages, language.English)
	if err != nil {
		panic(fmt.Sprintf("bundled messages are invalid: %v", err))
	}
	return c
}

// Load parses a YAML document of the form {lang: {key: message}}
func Load(data []byte, fallback language.Tag) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse messages: %w", err)
	}

	c := &Catalog{
		messages: make(map[language.Tag]map[string]string, len(raw)),
		fallback: fallback,
	}
	tags := []language.Tag{fallback}
	for lang, msgs := range raw {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", lang, err)
		}
		c.messages[tag] = msgs
		if tag != fallback {
			tags = append(tags, tag)
		}
	}
	if _, ok := c.messages[fallback]; !ok {
		return nil, fmt.Errorf("no messages for fallback language %s", fallback)
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Match picks the best supported language for an Accept-Language header
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(c.matcher, acceptLanguage)
	base, _ := tag.Base()
	for t := range c.messages {
		if b, _ := t.Base(); b == base {
			return t
		}
	}
	return c.fallback
}

// Message returns the message for key in lang, then in the fallback language,
// then the key itself
func (c *Catalog) Message(lang language.Tag, key string) string {
	key = strings.ToLower(key)
	if msg, ok := c.messages[lang][key]; ok {
		return msg
	}
	if msg, ok := c.messages[c.fallback][key]; ok {
		return msg
	}
	return key
}
