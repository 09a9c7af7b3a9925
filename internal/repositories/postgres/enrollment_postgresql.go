package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

// GetOrCreate enrolls the student if not already enrolled. The unique index on
// (course_id, student_id) is the source of truth; a concurrent insert racing
// this lookup is re-read instead of surfaced as an error.
func (r *EnrollmentPostgreSQL) GetOrCreate(ctx context.Context, courseID, studentID uint) (*models.Enrollment, bool, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&enrollment).Error
	if err == nil {
		return &enrollment, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up enrollment: %w", err)
	}

	enrollment = models.Enrollment{CourseID: courseID, StudentID: studentID}
	if err := r.db.WithContext(ctx).Create(&enrollment).Error; err != nil {
		if repositories.IsDuplicateError(err) {
			// Lost the race; fetch the winner's row
			var existing models.Enrollment
			if lookupErr := r.db.WithContext(ctx).
				Where("course_id = ? AND student_id = ?", courseID, studentID).
				First(&existing).Error; lookupErr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create enrollment: %w", err)
	}

	return &enrollment, true, nil
}

func (r *EnrollmentPostgreSQL) Delete(ctx context.Context, courseID, studentID uint) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&models.Enrollment{}).Error
}

// DeleteForCourseAndStudents removes the enrollments of the given students in
// one statement. Used when a course moves to another class.
func (r *EnrollmentPostgreSQL) DeleteForCourseAndStudents(ctx context.Context, courseID uint, studentIDs []uint) error {
	if len(studentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("course_id = ? AND student_id IN ?", courseID, studentIDs).
		Delete(&models.Enrollment{}).Error
}

func (r *EnrollmentPostgreSQL) Exists(ctx context.Context, courseID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentPostgreSQL) FindByCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Preload("Student").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentPostgreSQL) FindByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Course").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
