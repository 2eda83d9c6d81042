package models

import "gorm.io/gorm"

// AllowedCategories is the closed set of category names the catalog accepts.
var AllowedCategories = []string{
	"Web Development",
	"Data Science",
	"Mobile Development",
	"Cloud Computing",
	"Artificial Intelligence",
	"Cybersecurity",
	"Business and Entrepreneurship",
	"Graphic Design",
	"Digital Marketing",
	"Software Engineering",
}

// IsAllowedCategory reports whether name is in the fixed category set.
func IsAllowedCategory(name string) bool {
	for _, allowed := range AllowedCategories {
		if allowed == name {
			return true
		}
	}
	return false
}

type Category struct {
	gorm.Model
	// Name is unique among live rows only, so a deleted category can be recreated
	Name string `json:"name" gorm:"not null;uniqueIndex:idx_categories_name,where:deleted_at IS NULL"`
}
