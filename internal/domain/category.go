package domain

// Category classifies time entries for display and filtering.
type Category struct {
	ID    string
	Name  string
	Color string
}

// IsValid checks if the category has valid data.
func (c Category) IsValid() bool {
	return c.ID != "" && c.Name != ""
}

// SeedCategories returns the initial category set installed on first run.
func SeedCategories() []Category {
	return []Category{
		{ID: "dev", Name: "Development", Color: "#3b82f6"},
		{ID: "design", Name: "Design", Color: "#8b5cf6"},
		{ID: "meeting", Name: "Meeting", Color: "#f43f5e"},
		{ID: "research", Name: "Research", Color: "#10b981"},
		{ID: "admin", Name: "Administrative", Color: "#f59e0b"},
	}
}
