package models

import (
	"time"

	"gopkg.in/yaml.v3"
)

// commentDocument is the persisted shape of a Comment. Field order is the
// order they appear in the committed file; the post id is carried by the
// file path and is not repeated here.
type commentDocument struct {
	ID      string    `yaml:"id"`
	Date    time.Time `yaml:"date"`
	Name    string    `yaml:"name"`
	Email   string    `yaml:"email,omitempty"`
	Avatar  string    `yaml:"avatar,omitempty"`
	URL     string    `yaml:"url,omitempty"`
	Message string    `yaml:"message"`
}

var _ yaml.Marshaler = (*Comment)(nil)

// MarshalYAML implements yaml.Marshaler
func (c *Comment) MarshalYAML() (interface{}, error) {
	doc := commentDocument{
		ID:      c.id,
		Date:    c.date,
		Name:    c.name,
		Email:   c.email,
		Message: c.message,
	}
	if c.avatarURL != nil {
		doc.Avatar = c.avatarURL.String()
	}
	if c.url != nil {
		doc.URL = c.url.String()
	}
	return doc, nil
}

// YAML renders the comment as the document committed to the repository
func (c *Comment) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
