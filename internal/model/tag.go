package model

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#88C0D0"

// Tag is a free-form label attached to tasks.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SetKey sets the database key for this tag.
func (t *Tag) SetKey(key string) {
	if id, err := ParseIDKey(key); err == nil {
		t.ID = id
	}
}

// GetKey returns the database key for this tag.
func (t *Tag) GetKey() string {
	return GenerateTagKey(t.ID)
}

// GenerateTagKey generates a database key for a tag id.
func GenerateTagKey(id int64) string {
	return GenerateIDKey(PrefixTag, id)
}

// NewTag creates a new tag, falling back to the default color.
func NewTag(name, color string) *Tag {
	if color == "" {
		color = DefaultTagColor
	}
	return &Tag{Name: name, Color: color}
}
