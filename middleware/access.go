package middleware

import (
	"errors"

	"learnhub/database"
	"learnhub/models"

	"gorm.io/gorm"
)

// ContentAccess is the outcome of the course-content gate.
type ContentAccess int

const (
	// AccessGranted - owner, admin, or paid enrollment
	AccessGranted ContentAccess = iota
	// AccessNotEnrolled - caller has no enrollment entry
	AccessNotEnrolled
	// AccessPaymentPending - enrolled but payment not completed
	AccessPaymentPending
)

// CourseContentAccess applies the fine-grained content gate for a
// course and everything nested in it. Instructors who own the course
// and admins always pass; anyone else needs a paid enrollment.
func CourseContentAccess(user models.User, course models.Course) (ContentAccess, error) {
	if user.Role == models.RoleAdmin || course.InstructorID == user.ID {
		return AccessGranted, nil
	}

	var enrollment models.Enrollment
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessNotEnrolled, nil
		}
		return AccessNotEnrolled, err
	}

	if enrollment.Status != models.PaymentPaid {
		return AccessPaymentPending, nil
	}
	return AccessGranted, nil
}

// CanMutateCourse is the ownership gate for update/delete operations.
func CanMutateCourse(user models.User, course models.Course) bool {
	return user.Role == models.RoleAdmin || course.InstructorID == user.ID
}
