package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (r *AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *AssignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentPostgreSQL) Update(ctx context.Context, assignment *models.Assignment) error {
	if err := r.db.WithContext(ctx).Model(&models.Assignment{}).Where("id = ?", assignment.ID).Updates(map[string]interface{}{
		"title":       assignment.Title,
		"description": assignment.Description,
		"deadline":    assignment.Deadline,
		"file_path":   assignment.FilePath,
		"updated_at":  assignment.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

func (r *AssignmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Assignment{}, id).Error
}

func (r *AssignmentPostgreSQL) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{})

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.TeacherID != nil {
		query = query.Joins("JOIN courses c ON c.id = assignments.course_id").
			Where("c.teacher_id = ?", *filters.TeacherID)
	}
	if filters.DeadlineFrom != nil {
		query = query.Where("deadline >= ?", *filters.DeadlineFrom)
	}
	if filters.DeadlineTo != nil {
		query = query.Where("deadline <= ?", *filters.DeadlineTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("deadline ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var assignments []*models.Assignment
	if err := query.Preload("Course").Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *AssignmentPostgreSQL) FindByCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("deadline ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentPostgreSQL) FindByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var assignments []*models.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Preload("Course").
		Order("deadline ASC").
		Find(&assignments).Error
	return assignments, err
}
