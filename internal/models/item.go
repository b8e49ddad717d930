package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Item is the matchable content of a tile: a plain label or an image reference.
// On the wire a label is a bare string and an image is {"url": ..., "name": ...}.
type Item struct {
	Label string
	URL   string
	Name  string
}

// TextItem builds a label item.
func TextItem(label string) Item {
	return Item{Label: label}
}

// ImageItem builds an image item.
func ImageItem(url, name string) Item {
	return Item{URL: url, Name: name}
}

func (i Item) IsImage() bool {
	return i.URL != ""
}

// Identity is the canonical value used wherever two items are compared.
func (i Item) Identity() string {
	if i.IsImage() {
		if i.Name != "" {
			return i.Name
		}
		return i.URL
	}
	return i.Label
}

// Display is what the player sees for the item in prompts.
func (i Item) Display() string {
	return i.Identity()
}

func (i Item) IsEmpty() bool {
	return i.Identity() == ""
}

// SameItem reports whether a and b match, by identity or by raw value.
func SameItem(a, b Item) bool {
	return a.Identity() == b.Identity() || a == b
}

type imageItem struct {
	URL  string `json:"url" yaml:"url"`
	Name string `json:"name" yaml:"name"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	if i.IsImage() {
		return json.Marshal(imageItem{URL: i.URL, Name: i.Name})
	}
	return json.Marshal(i.Label)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*i = Item{}
		return nil
	case data[0] == '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*i = TextItem(label)
		return nil
	case data[0] == '{':
		var img imageItem
		if err := json.Unmarshal(data, &img); err != nil {
			return err
		}
		*i = ImageItem(img.URL, img.Name)
		return nil
	default:
		return fmt.Errorf("item must be a string or an object, got %s", data)
	}
}

func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*i = TextItem(node.Value)
		return nil
	case yaml.MappingNode:
		var img imageItem
		if err := node.Decode(&img); err != nil {
			return err
		}
		*i = ImageItem(img.URL, img.Name)
		return nil
	default:
		return fmt.Errorf("line %d: item must be a string or a mapping", node.Line)
	}
}
