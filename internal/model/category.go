package model

// Category groups tasks.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SetKey sets the database key for this category.
func (c *Category) SetKey(key string) {
	if id, err := ParseIDKey(key); err == nil {
		c.ID = id
	}
}

// GetKey returns the database key for this category.
func (c *Category) GetKey() string {
	return GenerateCategoryKey(c.ID)
}

// GenerateCategoryKey generates a database key for a category id.
func GenerateCategoryKey(id int64) string {
	return GenerateIDKey(PrefixCategory, id)
}

// NewCategory creates a new category.
func NewCategory(name, description string) *Category {
	return &Category{Name: name, Description: description}
}

// DefaultCategories are seeded into an empty store.
var DefaultCategories = []Category{
	{Name: "Work", Description: "Work related tasks"},
	{Name: "Personal", Description: "Personal tasks"},
	{Name: "Home", Description: "Household chores"},
	{Name: "Study", Description: "Courses and exams"},
	{Name: "Health", Description: "Appointments and exercise"},
	{Name: "Finance", Description: "Bills and budgeting"},
}
