package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type GradePostgreSQL struct {
	db *gorm.DB
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{db: db}
}

func (r *GradePostgreSQL) Create(ctx context.Context, grade *models.Grade) error {
	if err := r.db.WithContext(ctx).Create(grade).Error; err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}
	return nil
}

func (r *GradePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	var grade models.Grade
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Assignment").
		First(&grade, id).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *GradePostgreSQL) Update(ctx context.Context, grade *models.Grade) error {
	if err := r.db.WithContext(ctx).Model(&models.Grade{}).Where("id = ?", grade.ID).Updates(map[string]interface{}{
		"value":      grade.Value,
		"comment":    grade.Comment,
		"updated_at": grade.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update grade: %w", err)
	}
	return nil
}

func (r *GradePostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Grade{}, id).Error
}

func (r *GradePostgreSQL) List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Grade{})

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filters.AssignmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var grades []*models.Grade
	if err := query.Preload("Student").Preload("Assignment").Find(&grades).Error; err != nil {
		return nil, 0, err
	}

	return grades, total, nil
}

func (r *GradePostgreSQL) FindByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Assignment").
		Order("created_at DESC").
		Find(&grades).Error
	return grades, err
}

// AverageForStudent returns 0 when the student has no grades
func (r *GradePostgreSQL) AverageForStudent(ctx context.Context, studentID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Grade{}).
		Where("student_id = ?", studentID).
		Select("AVG(value)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
