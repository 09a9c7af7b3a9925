package services

import (
	"context"
	"testing"
	"time"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/validator"
)

func TestDashboardService_AdminDashboard(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewDashboardService(repo, testLogger(), nil)

	class, students := seedClassWithStudents(t, repo, "8B", 3)
	teacher := addTeacher(t, repo, "statsteach")
	if err := repo.Class().AddTeacher(ctx, class.ID, teacher.ID); err != nil {
		t.Fatalf("failed to assign teacher: %v", err)
	}

	course := &models.Course{Title: "Science", TeacherID: teacher.ID, ClassID: &class.ID}
	if err := repo.Course().Create(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	enrollment := NewEnrollmentService(repo, testLogger(), nil)
	if err := enrollment.SyncForCourse(ctx, course); err != nil {
		t.Fatalf("SyncForCourse failed: %v", err)
	}

	deadline := time.Now().Add(time.Hour)
	assignment := &models.Assignment{CourseID: course.ID, Title: "Lab report", Deadline: deadline}
	if err := repo.Assignment().Create(ctx, assignment); err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}

	onTime := &models.Submission{AssignmentID: assignment.ID, StudentID: students[0].ID, SubmittedAt: deadline.Add(-time.Minute)}
	late := &models.Submission{AssignmentID: assignment.ID, StudentID: students[1].ID, SubmittedAt: deadline.Add(time.Minute)}
	for _, sub := range []*models.Submission{onTime, late} {
		if err := repo.Submission().Create(ctx, sub); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}
	}

	dash, err := service.AdminDashboard(ctx)
	if err != nil {
		t.Fatalf("AdminDashboard failed: %v", err)
	}

	if dash.StudentCount != 3 {
		t.Errorf("expected 3 students, got %d", dash.StudentCount)
	}
	if dash.TeacherCount != 1 {
		t.Errorf("expected 1 teacher, got %d", dash.TeacherCount)
	}
	if dash.ClassCount != 1 || dash.CourseCount != 1 || dash.AssignmentCount != 1 {
		t.Errorf("unexpected counts: %+v", dash)
	}
	if dash.EnrollmentCount != 3 {
		t.Errorf("expected 3 enrollments, got %d", dash.EnrollmentCount)
	}
	if dash.OnTimeSubmissions != 1 || dash.LateSubmissions != 1 {
		t.Errorf("expected 1 on-time and 1 late submission, got %d/%d", dash.OnTimeSubmissions, dash.LateSubmissions)
	}
}

func TestDashboardService_TeacherDashboard(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewDashboardService(repo, testLogger(), nil)

	teacher := addTeacher(t, repo, "dashteach")
	class, _ := seedClassWithStudents(t, repo, "8C", 0)
	if err := repo.Class().AddTeacher(ctx, class.ID, teacher.ID); err != nil {
		t.Fatalf("failed to assign teacher: %v", err)
	}

	course := &models.Course{Title: "Art", TeacherID: teacher.ID}
	if err := repo.Course().Create(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	overdue := &models.Assignment{CourseID: course.ID, Title: "Sketch", Deadline: time.Now().Add(-time.Hour)}
	upcoming := &models.Assignment{CourseID: course.ID, Title: "Portrait", Deadline: time.Now().Add(48 * time.Hour)}
	distant := &models.Assignment{CourseID: course.ID, Title: "Mural", Deadline: time.Now().Add(30 * 24 * time.Hour)}
	for _, a := range []*models.Assignment{overdue, upcoming, distant} {
		if err := repo.Assignment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assignment: %v", err)
		}
	}

	dash, err := service.TeacherDashboard(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("TeacherDashboard failed: %v", err)
	}

	if dash.ClassCount != 1 {
		t.Errorf("expected 1 class, got %d", dash.ClassCount)
	}
	if dash.CourseCount != 1 || dash.AssignmentCount != 3 {
		t.Errorf("unexpected counts: %+v", dash)
	}
	if len(dash.OverdueAssignments) != 1 || dash.OverdueAssignments[0].Title != "Sketch" {
		t.Errorf("expected Sketch overdue, got %+v", dash.OverdueAssignments)
	}
	// Deadlines beyond the seven day window are not upcoming
	if len(dash.UpcomingAssignments) != 1 || dash.UpcomingAssignments[0].Title != "Portrait" {
		t.Errorf("expected Portrait upcoming, got %+v", dash.UpcomingAssignments)
	}
}

func TestDashboardService_StudentDashboard(t *testing.T) {
	ctx := context.Background()
	fx := newSubmitFixture(t, time.Now().Add(24*time.Hour))
	service := NewDashboardService(fx.repo, testLogger(), nil)
	grading := NewGradingService(fx.repo, testLogger(), validator.New(), nil)

	// A second open assignment the student has not submitted
	pending := &models.Assignment{CourseID: fx.course.ID, Title: "Essay", Deadline: time.Now().Add(48 * time.Hour)}
	if err := fx.repo.Assignment().Create(ctx, pending); err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}

	if _, err := fx.service.Submit(ctx, fx.student.ID, fx.assignment.ID, submitRequest()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	for _, value := range []float64{12, 16} {
		if _, err := grading.RecordGrade(ctx, fx.teacher.ID, &models.RecordGradeRequest{
			StudentID:    fx.student.ID,
			AssignmentID: fx.assignment.ID,
			Value:        value,
		}); err != nil {
			t.Fatalf("RecordGrade failed: %v", err)
		}
	}

	dash, err := service.StudentDashboard(ctx, fx.student.ID)
	if err != nil {
		t.Fatalf("StudentDashboard failed: %v", err)
	}

	if len(dash.Courses) != 1 {
		t.Errorf("expected 1 course, got %d", len(dash.Courses))
	}
	if len(dash.PendingAssignments) != 1 || dash.PendingAssignments[0].Assignment.Title != "Essay" {
		t.Errorf("expected Essay pending, got %+v", dash.PendingAssignments)
	}
	if len(dash.RecentGrades) != 2 {
		t.Errorf("expected 2 recent grades, got %d", len(dash.RecentGrades))
	}
	if dash.Average != 14 {
		t.Errorf("expected average 14, got %v", dash.Average)
	}
}
