package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultConditionID is the reserved id of the welcome/fallback rule
const DefaultConditionID = "default"

// Button is a reply button attached to a condition
type Button struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Buttons is an ordered list of reply buttons.
// Its JSON form is an object keyed by button id: {"<id>": {"title": "..."}}.
// Key order of the object is kept as button order.
type Buttons []Button

// MarshalJSON encodes the buttons as an id-keyed object in list order
func (b Buttons) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, btn := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(btn.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(struct {
			Title string `json:"title"`
		}{btn.Title})
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

// UnmarshalJSON decodes an id-keyed object, or a list of {id, title}
func (b *Buttons) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*b = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Button
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*b = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("buttons: expected object, got %v", tok)
	}

	result := Buttons{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("buttons: expected string key, got %v", keyTok)
		}
		var value struct {
			Title string `json:"title"`
		}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("buttons: decode %q: %w", id, err)
		}
		result = append(result, Button{ID: id, Title: value.Title})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = result
	return nil
}

// Condition is a rule mapping keywords or a button id to a reply template
type Condition struct {
	ID       string   `json:"id,omitempty" yaml:"id"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Buttons  Buttons  `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// IsDefault reports whether this is the reserved fallback rule
func (c *Condition) IsDefault() bool {
	return c.ID == DefaultConditionID
}

// HasButtons reports whether the reply is rendered as interactive buttons
func (c *Condition) HasButtons() bool {
	return len(c.Buttons) > 0
}

// MatchesText reports whether the inbound text triggers one of the keywords.
// A keyword matches when it is contained in the text, or when the text is
// longer than three characters and is contained in the keyword.
// Comparison is case-insensitive. Blank keywords never match.
func (c *Condition) MatchesText(text string) bool {
	normalizedText := strings.ToLower(text)
	textLen := utf8.RuneCountInString(normalizedText)

	for _, keyword := range c.Keywords {
		normalizedKeyword := strings.ToLower(keyword)
		if strings.TrimSpace(normalizedKeyword) == "" {
			continue
		}
		if strings.Contains(normalizedText, normalizedKeyword) {
			return true
		}
		if textLen > 3 && strings.Contains(normalizedKeyword, normalizedText) {
			return true
		}
	}
	return false
}

// Validate checks the condition before it is stored
func (c *Condition) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: condition id is required", ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(c.Buttons))
	for _, btn := range c.Buttons {
		if btn.ID == "" {
			return fmt.Errorf("%w: button id is required", ErrInvalidArgument)
		}
		if seen[btn.ID] {
			return fmt.Errorf("%w: duplicate button id %q", ErrInvalidArgument, btn.ID)
		}
		seen[btn.ID] = true
	}
	return nil
}

// ConditionTable is the rule table in table order
type ConditionTable []*Condition

// Get returns the condition with the given id, or nil
func (t ConditionTable) Get(id string) *Condition {
	if id == "" {
		return nil
	}
	for _, c := range t {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Default returns the reserved fallback condition, or nil
func (t ConditionTable) Default() *Condition {
	return t.Get(DefaultConditionID)
}

// MatchKeyword returns the first condition in table order whose keywords match
func (t ConditionTable) MatchKeyword(text string) *Condition {
	for _, c := range t {
		if len(c.Keywords) == 0 {
			continue
		}
		if c.MatchesText(text) {
			return c
		}
	}
	return nil
}
