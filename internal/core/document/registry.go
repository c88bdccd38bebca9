package document

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// TagID is a stable opaque tag identifier. Ids are never reused.
type TagID string

// RenderMode selects how a tag colors the text it covers.
type RenderMode int

const (
	// ModeBackground paints the tag color behind the text.
	ModeBackground RenderMode = iota
	// ModeTextColor paints the glyphs themselves.
	ModeTextColor
)

func (m RenderMode) String() string {
	if m == ModeTextColor {
		return "text"
	}
	return "background"
}

// ParseRenderMode is the inverse of RenderMode.String. Unknown values fall
// back to ModeBackground so old save files keep loading.
func ParseRenderMode(s string) RenderMode {
	if s == "text" {
		return ModeTextColor
	}
	return ModeBackground
}

// Tag is a named, colored label definition.
type Tag struct {
	ID    TagID
	Name  string
	Color RGBA
	Mode  RenderMode
}

// TagRegistry owns the set of tags. Names are unique and mutable; ids are
// permanent.
type TagRegistry struct {
	tags   map[TagID]*Tag
	byName map[string]TagID
}

// NewTagRegistry returns an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{
		tags:   make(map[TagID]*Tag),
		byName: make(map[string]TagID),
	}
}

// Create adds a new tag with a fresh id and a random color.
func (r *TagRegistry) Create(name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrInvalidTagName
	}
	if _, ok := r.byName[name]; ok {
		return Tag{}, ErrTagExists
	}
	t := &Tag{
		ID:    TagID(uuid.NewString()),
		Name:  name,
		Color: RandomTagColor(),
		Mode:  ModeBackground,
	}
	r.tags[t.ID] = t
	r.byName[t.Name] = t.ID
	return *t, nil
}

// Rename changes a tag's display name, keeping names unique.
func (r *TagRegistry) Rename(id TagID, name string) error {
	t, ok := r.tags[id]
	if !ok {
		return ErrUnknownTag
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidTagName
	}
	if name == t.Name {
		return nil
	}
	if _, taken := r.byName[name]; taken {
		return ErrTagExists
	}
	delete(r.byName, t.Name)
	t.Name = name
	r.byName[name] = id
	return nil
}

// SetColor updates a tag's color.
func (r *TagRegistry) SetColor(id TagID, c RGBA) error {
	t, ok := r.tags[id]
	if !ok {
		return ErrUnknownTag
	}
	t.Color = c
	return nil
}

// SetMode updates a tag's render mode.
func (r *TagRegistry) SetMode(id TagID, m RenderMode) error {
	t, ok := r.tags[id]
	if !ok {
		return ErrUnknownTag
	}
	t.Mode = m
	return nil
}

// Get looks a tag up by id.
func (r *TagRegistry) Get(id TagID) (Tag, bool) {
	t, ok := r.tags[id]
	if !ok {
		return Tag{}, false
	}
	return *t, true
}

// Len returns the number of tags.
func (r *TagRegistry) Len() int {
	return len(r.tags)
}

// Tags returns all tags sorted by name for the palette UI.
func (r *TagRegistry) Tags() []Tag {
	out := make([]Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// remove deletes a tag. The document drives the cascade to the range index,
// so this stays unexported.
func (r *TagRegistry) remove(id TagID) bool {
	t, ok := r.tags[id]
	if !ok {
		return false
	}
	delete(r.byName, t.Name)
	delete(r.tags, id)
	return true
}

// restore re-inserts a tag from a snapshot, keeping its original id.
func (r *TagRegistry) restore(t Tag) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.ID == "" || t.Name == "" {
		return ErrInvalidTagName
	}
	if _, ok := r.tags[t.ID]; ok {
		return ErrTagExists
	}
	if _, ok := r.byName[t.Name]; ok {
		return ErrTagExists
	}
	stored := t
	r.tags[t.ID] = &stored
	r.byName[t.Name] = t.ID
	return nil
}
