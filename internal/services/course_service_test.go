package services

import (
	"context"
	"testing"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/validator"
)

func newCourseFixture(t *testing.T) (*fakeRepository, CourseService) {
	t.Helper()
	repo := newFakeRepository()
	logger := testLogger()
	enrollment := NewEnrollmentService(repo, logger, nil)
	return repo, NewCourseService(repo, logger, validator.New(), enrollment)
}

func addTeacher(t *testing.T, repo *fakeRepository, username string) *models.User {
	t.Helper()
	teacher := &models.User{Username: username, Email: username + "@school.test", Role: models.RoleTeacher, IsActive: true}
	if err := repo.User().Create(context.Background(), teacher); err != nil {
		t.Fatalf("failed to create teacher: %v", err)
	}
	return teacher
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()
	repo, service := newCourseFixture(t)

	teacher := addTeacher(t, repo, "mathteach")
	class, students := seedClassWithStudents(t, repo, "6B", 2)
	if err := repo.Class().AddTeacher(ctx, class.ID, teacher.ID); err != nil {
		t.Fatalf("failed to assign teacher: %v", err)
	}

	course, err := service.Create(ctx, teacher.ID, &models.CreateCourseRequest{
		Title:   "Algebra",
		ClassID: &class.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if course.TeacherID != teacher.ID {
		t.Errorf("course should be owned by the creating teacher, got %d", course.TeacherID)
	}

	// Attaching a class enrolls its students right away
	for _, student := range students {
		enrolled, err := repo.Enrollment().Exists(ctx, course.ID, student.ID)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if !enrolled {
			t.Errorf("student %d should be enrolled", student.ID)
		}
	}

	t.Run("unassigned class rejected", func(t *testing.T) {
		other, _ := seedClassWithStudents(t, repo, "6C", 0)
		_, err := service.Create(ctx, teacher.ID, &models.CreateCourseRequest{
			Title:   "Geometry",
			ClassID: &other.ID,
		})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("unknown class rejected", func(t *testing.T) {
		missing := uint(9999)
		_, err := service.Create(ctx, teacher.ID, &models.CreateCourseRequest{
			Title:   "Ghost course",
			ClassID: &missing,
		})
		if !IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("classless course has no enrollments", func(t *testing.T) {
		course, err := service.Create(ctx, teacher.ID, &models.CreateCourseRequest{Title: "Electives"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		count, _ := repo.Enrollment().CountByCourse(ctx, course.ID)
		if count != 0 {
			t.Errorf("expected no enrollments, got %d", count)
		}
	})
}

func TestCourseService_Update_ClassChange(t *testing.T) {
	ctx := context.Background()
	repo, service := newCourseFixture(t)

	teacher := addTeacher(t, repo, "switcher")
	oldClass, oldStudents := seedClassWithStudents(t, repo, "7A", 2)
	newClass, newStudents := seedClassWithStudents(t, repo, "7B", 2)
	for _, class := range []*models.Class{oldClass, newClass} {
		if err := repo.Class().AddTeacher(ctx, class.ID, teacher.ID); err != nil {
			t.Fatalf("failed to assign teacher: %v", err)
		}
	}

	course, err := service.Create(ctx, teacher.ID, &models.CreateCourseRequest{
		Title:   "Literature",
		ClassID: &oldClass.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.Update(ctx, teacher.ID, course.ID, &models.UpdateCourseRequest{ClassID: &newClass.ID}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	for _, student := range oldStudents {
		enrolled, _ := repo.Enrollment().Exists(ctx, course.ID, student.ID)
		if enrolled {
			t.Errorf("old class student %d should have been unenrolled", student.ID)
		}
	}
	for _, student := range newStudents {
		enrolled, _ := repo.Enrollment().Exists(ctx, course.ID, student.ID)
		if !enrolled {
			t.Errorf("new class student %d should be enrolled", student.ID)
		}
	}

	t.Run("same class re-sync picks up late joiners", func(t *testing.T) {
		late := &models.User{Username: "late", Email: "late@school.test", Role: models.RoleStudent, ClassID: &newClass.ID, IsActive: true}
		if err := repo.User().Create(ctx, late); err != nil {
			t.Fatalf("failed to create student: %v", err)
		}

		title := "Literature II"
		if _, err := service.Update(ctx, teacher.ID, course.ID, &models.UpdateCourseRequest{Title: &title}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		enrolled, _ := repo.Enrollment().Exists(ctx, course.ID, late.ID)
		if !enrolled {
			t.Error("late class joiner should be enrolled on re-save")
		}
	})
}

func TestCourseService_OwnershipChecks(t *testing.T) {
	ctx := context.Background()
	repo, service := newCourseFixture(t)

	owner := addTeacher(t, repo, "owner")
	rival := addTeacher(t, repo, "rival-teach")

	course, err := service.Create(ctx, owner.ID, &models.CreateCourseRequest{Title: "Drama"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "Hijacked"
	if _, err := service.Update(ctx, rival.ID, course.ID, &models.UpdateCourseRequest{Title: &title}); !IsPermissionError(err) {
		t.Errorf("expected permission error on update, got %v", err)
	}
	if err := service.Delete(ctx, rival.ID, course.ID); !IsPermissionError(err) {
		t.Errorf("expected permission error on delete, got %v", err)
	}

	if err := service.Delete(ctx, owner.ID, course.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := service.GetByID(ctx, course.ID); !IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
