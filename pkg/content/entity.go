// Package content defines the Strapi data contracts shared by the client and
// the cache layer: entity envelopes, media, response wrappers and the
// per-schema adapters that normalize legacy v4 bodies into the v5 shape.
package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entity is a Strapi collection record in the flat (v5) envelope.
// Attributes holds the content-type specific fields of T.
type Entity[T any] struct {
	ID          int
	DocumentID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
	Attributes  T
}

// envelope is the system part of a flat entity.
type envelope struct {
	ID          int        `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// UnmarshalJSON decodes the envelope fields and the attributes from the same
// flat object.
func (e *Entity[T]) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode entity envelope: %w", err)
	}

	var attrs T
	if err := json.Unmarshal(data, &attrs); err != nil {
		return fmt.Errorf("decode entity attributes: %w", err)
	}

	e.ID = env.ID
	e.DocumentID = env.DocumentID
	e.CreatedAt = env.CreatedAt
	e.UpdatedAt = env.UpdatedAt
	e.PublishedAt = env.PublishedAt
	e.Attributes = attrs
	return nil
}

// MarshalJSON writes the entity back as one flat object.
func (e Entity[T]) MarshalJSON() ([]byte, error) {
	attrs, err := json.Marshal(e.Attributes)
	if err != nil {
		return nil, fmt.Errorf("encode entity attributes: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(attrs, &fields); err != nil {
		return nil, fmt.Errorf("entity attributes must encode to an object: %w", err)
	}

	env, err := json.Marshal(envelope{
		ID:          e.ID,
		DocumentID:  e.DocumentID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		PublishedAt: e.PublishedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode entity envelope: %w", err)
	}
	if err := json.Unmarshal(env, &fields); err != nil {
		return nil, fmt.Errorf("merge entity envelope: %w", err)
	}

	return json.Marshal(fields)
}

// Response is the standard Strapi response wrapper.
type Response[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries response metadata.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page returned by a collection query.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Media is an uploaded file (image, logo, video) as returned by the upload
// plugin.
type Media struct {
	ID              int           `json:"id"`
	DocumentID      string        `json:"documentId,omitempty"`
	Name            string        `json:"name"`
	AlternativeText string        `json:"alternativeText,omitempty"`
	Caption         string        `json:"caption,omitempty"`
	Width           int           `json:"width,omitempty"`
	Height          int           `json:"height,omitempty"`
	URL             string        `json:"url"`
	Mime            string        `json:"mime,omitempty"`
	Formats         *ImageFormats `json:"formats,omitempty"`
}

// ImageFormats lists the responsive renditions generated for an image.
type ImageFormats struct {
	Thumbnail *ImageFormat `json:"thumbnail,omitempty"`
	Small     *ImageFormat `json:"small,omitempty"`
	Medium    *ImageFormat `json:"medium,omitempty"`
	Large     *ImageFormat `json:"large,omitempty"`
}

// ImageFormat is a single rendition.
type ImageFormat struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}
