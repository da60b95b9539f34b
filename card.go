package twittercards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Attribute is a single normalized card property and its value.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Card holds the twitter:* properties extracted from one document, keyed by
// normalized property name and kept in document order.
//
// A Card is never modified after NewCard returns it, so it is safe for
// concurrent reads.
type Card struct {
	keys   []string
	values map[string]string
}

// NewCard builds a Card from attributes in document order.
// When a key repeats, the first occurrence wins and later ones are ignored.
func NewCard(attrs []Attribute) *Card {
	c := &Card{values: make(map[string]string, len(attrs))}
	for _, a := range attrs {
		c.add(a.Key, a.Value)
	}
	return c
}

func (c *Card) add(key, value string) {
	if _, ok := c.values[key]; ok {
		return
	}
	c.keys = append(c.keys, key)
	c.values[key] = value
}

var keyReplacer = strings.NewReplacer("-", "_", ":", "_")

// NormalizeKey converts a captured property name to its card key:
// lowercase, with every "-" and ":" replaced by "_".
// For example "image:alt" becomes "image_alt".
func NormalizeKey(property string) string {
	return keyReplacer.Replace(strings.ToLower(property))
}

// Get returns the value stored under key and whether it is present.
func (c *Card) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" when absent.
func (c *Card) Value(key string) string {
	return c.values[key]
}

// Title returns the "title" property.
func (c *Card) Title() string {
	return c.values["title"]
}

// Site returns the "site" property.
func (c *Card) Site() string {
	return c.values["site"]
}

// Description returns the "description" property.
func (c *Card) Description() string {
	return c.values["description"]
}

// Keys returns the property names in document order.
func (c *Card) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of properties.
func (c *Card) Len() int {
	return len(c.keys)
}

// Attributes returns the properties as ordered key/value pairs.
func (c *Card) Attributes() []Attribute {
	attrs := make([]Attribute, len(c.keys))
	for i, k := range c.keys {
		attrs[i] = Attribute{Key: k, Value: c.values[k]}
	}
	return attrs
}

// Map returns a copy of the properties as a plain map.
func (c *Card) Map() map[string]string {
	m := make(map[string]string, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the card as a JSON object with keys in document order.
func (c *Card) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
func (c *Card) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("card: expected JSON object, got %v", tok)
	}

	*c = Card{values: make(map[string]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("card: expected string key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("card: value for %q: %w", key, err)
		}
		c.add(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
