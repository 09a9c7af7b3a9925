package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/cache"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type ClassPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewClassPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ClassRepository {
	return &ClassPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ClassPostgreSQL) Create(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Class, "list:*")
	return nil
}

// GetByID retrieves a class by ID with caching
func (r *ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var class models.Class

	err := r.cacheManager.Class.CacheOrExecute(ctx, cacheKey, &class, cache.ClassCacheConfig.TTL, func() (interface{}, error) {
		var dbClass models.Class
		if err := r.db.WithContext(ctx).First(&dbClass, id).Error; err != nil {
			return nil, err
		}
		return &dbClass, nil
	})
	if err != nil {
		return nil, err
	}

	return &class, nil
}

// GetByIDWithMembers loads the class together with its teachers and students
func (r *ClassPostgreSQL) GetByIDWithMembers(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).
		Preload("Teachers").
		Preload("Students", func(db *gorm.DB) *gorm.DB {
			return db.Where("role = ?", models.RoleStudent).Order("username ASC")
		}).
		First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassPostgreSQL) Update(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Model(&models.Class{}).Where("id = ?", class.ID).Updates(map[string]interface{}{
		"name":        class.Name,
		"description": class.Description,
		"updated_at":  class.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, class.ID)
	return nil
}

func (r *ClassPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Class{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, id)
	return nil
}

func (r *ClassPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.Class, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Class{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var classes []*models.Class
	if err := query.Find(&classes).Error; err != nil {
		return nil, 0, err
	}

	return classes, total, nil
}

func (r *ClassPostgreSQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassPostgreSQL) AddTeacher(ctx context.Context, classID, teacherID uint) error {
	class := models.Class{ID: classID}
	teacher := models.User{ID: teacherID}
	if err := r.db.WithContext(ctx).Model(&class).Association("Teachers").Append(&teacher); err != nil {
		return fmt.Errorf("failed to assign teacher to class: %w", err)
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, classID)
	return nil
}

func (r *ClassPostgreSQL) RemoveTeacher(ctx context.Context, classID, teacherID uint) error {
	class := models.Class{ID: classID}
	teacher := models.User{ID: teacherID}
	if err := r.db.WithContext(ctx).Model(&class).Association("Teachers").Delete(&teacher); err != nil {
		return fmt.Errorf("failed to remove teacher from class: %w", err)
	}
	cache.InvalidateClassCache(ctx, r.cacheManager, classID)
	return nil
}

func (r *ClassPostgreSQL) HasTeacher(ctx context.Context, classID, teacherID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("class_teachers").
		Where("class_id = ? AND user_id = ?", classID, teacherID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassPostgreSQL) FindByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	var classes []*models.Class
	err := r.db.WithContext(ctx).
		Joins("JOIN class_teachers ct ON ct.class_id = classes.id").
		Where("ct.user_id = ?", teacherID).
		Order("classes.name ASC").
		Find(&classes).Error
	return classes, err
}
