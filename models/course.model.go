package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultMaxStudents is applied when a course is created without a capacity.
const DefaultMaxStudents = 5

// Course is the catalog aggregate. Mutation rights belong to the
// creating instructor, with admin override.
type Course struct {
	gorm.Model
	Title        string         `json:"title" gorm:"not null;uniqueIndex:idx_courses_title,where:deleted_at IS NULL"` // unique among live rows
	Description  string         `json:"description"`
	CategoryID   uint           `json:"category_id" gorm:"index;not null"`
	Duration     string         `json:"duration"`
	Price        float64        `json:"price" gorm:"default:0"`
	InstructorID uint           `json:"instructor_id" gorm:"index;not null"`
	MaxStudents  int            `json:"max_students" gorm:"default:5"`
	Attachments  datatypes.JSON `json:"attachments,omitempty"` // uploaded file URLs

	Modules     []Module     `json:"modules,omitempty"`
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

// Module is a section within a course
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`

	Lessons []Lesson `json:"lessons,omitempty"`
	Quizzes []Quiz   `json:"quizzes,omitempty"`
}

// Lesson holds module content. A lesson may nest sub-lessons through
// ParentID; the tree is assembled explicitly (see lesson_tree.go).
type Lesson struct {
	gorm.Model
	ModuleID   uint           `json:"module_id" gorm:"index;not null"`
	ParentID   *uint          `json:"parent_id" gorm:"index"`
	Title      string         `json:"title"`
	Content    string         `json:"content" gorm:"type:text"`
	Multimedia datatypes.JSON `json:"multimedia,omitempty"` // uploaded attachment URLs
	OrderIndex int            `json:"order_index" gorm:"default:0"`

	Children []Lesson `json:"children,omitempty" gorm:"-"`
}

type Quiz struct {
	gorm.Model
	ModuleID uint           `json:"module_id" gorm:"index;not null"`
	Question string         `json:"question"`
	Options  datatypes.JSON `json:"options"`
	Answer   string         `json:"-"`
}

// Enrollment associates a user with a course. Status stays pending
// until payment verification flips it to paid. A user appears at most
// once per course.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course,where:deleted_at IS NULL"`
	CourseID uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status   string `json:"status" gorm:"default:'pending'"` // pending, paid
}

// CoursePreview is the reduced payload returned to callers whose
// payment is still pending.
type CoursePreview struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Preview strips a course down to its purchasable summary.
func (c *Course) Preview() CoursePreview {
	return CoursePreview{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
	}
}
