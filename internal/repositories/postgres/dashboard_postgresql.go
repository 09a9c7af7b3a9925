package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &DashboardPostgreSQL{db: db}
}

func (r *DashboardPostgreSQL) CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *DashboardPostgreSQL) CountClasses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Class{}).Count(&count).Error
	return count, err
}

func (r *DashboardPostgreSQL) CountCourses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error
	return count, err
}

func (r *DashboardPostgreSQL) CountAssignments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).Count(&count).Error
	return count, err
}

func (r *DashboardPostgreSQL) CountEnrollments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).Count(&count).Error
	return count, err
}

func (r *DashboardPostgreSQL) CountSubmissions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).Count(&count).Error
	return count, err
}

// GetSubmissionTimeliness splits all submissions by deadline comparison.
// Submitting at the exact deadline counts as on time.
func (r *DashboardPostgreSQL) GetSubmissionTimeliness(ctx context.Context) (*repositories.SubmissionTimeliness, error) {
	var result repositories.SubmissionTimeliness

	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Joins("JOIN assignments a ON a.id = submissions.assignment_id").
		Where("submissions.submitted_at <= a.deadline").
		Count(&result.OnTime).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Joins("JOIN assignments a ON a.id = submissions.assignment_id").
		Where("submissions.submitted_at > a.deadline").
		Count(&result.Late).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *DashboardPostgreSQL) CountCoursesByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error
	return count, err
}

func (r *DashboardPostgreSQL) CountAssignmentsByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Joins("JOIN courses c ON c.id = assignments.course_id").
		Where("c.teacher_id = ?", teacherID).
		Count(&count).Error
	return count, err
}
