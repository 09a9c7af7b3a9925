package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/akalan-edu/portal-service/internal/cache"
	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

const (
	adminDashboardCacheKey = "dashboard:admin"
	dashboardCacheTTL      = 2 * time.Minute
	upcomingWindow         = 7 * 24 * time.Hour
	recentGradeLimit       = 5
)

type dashboardService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	cacheManager *cache.CacheManager
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger, cacheManager *cache.CacheManager) DashboardService {
	return &dashboardService{
		repo:         repo,
		logger:       logger,
		cacheManager: cacheManager,
	}
}

// AdminDashboard aggregates portal-wide counts. The result is cached briefly;
// the counts are informational and a couple minutes of staleness is fine.
func (s *dashboardService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	if s.cacheManager != nil {
		var cached models.AdminDashboard
		err := s.cacheManager.Stats.CacheOrExecute(ctx, adminDashboardCacheKey, &cached, dashboardCacheTTL, func() (interface{}, error) {
			return s.buildAdminDashboard(ctx)
		})
		if err == nil {
			return &cached, nil
		}
		s.logger.Warn("dashboard cache unavailable, querying directly", "error", err)
	}
	return s.buildAdminDashboard(ctx)
}

func (s *dashboardService) buildAdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	dash := &models.AdminDashboard{}
	stats := s.repo.Dashboard()

	var err error
	if dash.StudentCount, err = stats.CountUsersByRole(ctx, models.RoleStudent); err != nil {
		return nil, err
	}
	if dash.TeacherCount, err = stats.CountUsersByRole(ctx, models.RoleTeacher); err != nil {
		return nil, err
	}
	if dash.ClassCount, err = stats.CountClasses(ctx); err != nil {
		return nil, err
	}
	if dash.CourseCount, err = stats.CountCourses(ctx); err != nil {
		return nil, err
	}
	if dash.AssignmentCount, err = stats.CountAssignments(ctx); err != nil {
		return nil, err
	}
	if dash.EnrollmentCount, err = stats.CountEnrollments(ctx); err != nil {
		return nil, err
	}
	if dash.SubmissionCount, err = stats.CountSubmissions(ctx); err != nil {
		return nil, err
	}

	timeliness, err := stats.GetSubmissionTimeliness(ctx)
	if err != nil {
		return nil, err
	}
	dash.OnTimeSubmissions = timeliness.OnTime
	dash.LateSubmissions = timeliness.Late

	return dash, nil
}

// TeacherDashboard summarizes the teacher's classes, courses and assignment
// deadlines. Overdue means past deadline; upcoming covers the next seven days.
func (s *dashboardService) TeacherDashboard(ctx context.Context, teacherID uint) (*models.TeacherDashboard, error) {
	dash := &models.TeacherDashboard{
		OverdueAssignments:  []models.Assignment{},
		UpcomingAssignments: []models.Assignment{},
	}

	classes, err := s.repo.Class().FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	dash.ClassCount = int64(len(classes))

	if dash.CourseCount, err = s.repo.Dashboard().CountCoursesByTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	if dash.AssignmentCount, err = s.repo.Dashboard().CountAssignmentsByTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	assignments, _, err := s.repo.Assignment().List(ctx, repositories.AssignmentFilters{TeacherID: &teacherID})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	horizon := now.Add(upcomingWindow)
	for _, assignment := range assignments {
		switch {
		case assignment.Deadline.Before(now):
			dash.OverdueAssignments = append(dash.OverdueAssignments, *assignment)
		case !assignment.Deadline.After(horizon):
			dash.UpcomingAssignments = append(dash.UpcomingAssignments, *assignment)
		}
	}

	return dash, nil
}

// StudentDashboard lists the student's courses, the open assignments they have
// not submitted yet, and their most recent grades with the overall average.
func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uint) (*models.StudentDashboard, error) {
	dash := &models.StudentDashboard{
		Courses:            []models.Course{},
		PendingAssignments: []models.AssignmentStatus{},
		RecentGrades:       []models.Grade{},
	}

	courses, err := s.repo.Course().FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		dash.Courses = append(dash.Courses, *course)
		courseIDs = append(courseIDs, course.ID)
	}

	if len(courseIDs) > 0 {
		assignments, err := s.repo.Assignment().FindByCourses(ctx, courseIDs)
		if err != nil {
			return nil, err
		}

		submissions, err := s.repo.Submission().FindByStudent(ctx, studentID)
		if err != nil {
			return nil, err
		}
		submitted := make(map[uint]bool, len(submissions))
		for _, sub := range submissions {
			submitted[sub.AssignmentID] = true
		}

		now := time.Now()
		for _, assignment := range assignments {
			if submitted[assignment.ID] || !assignment.IsOpen(now) {
				continue
			}
			dash.PendingAssignments = append(dash.PendingAssignments, models.AssignmentStatus{
				Assignment: assignment,
				Open:       true,
			})
		}
	}

	grades, err := s.repo.Grade().FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i, grade := range grades {
		if i >= recentGradeLimit {
			break
		}
		dash.RecentGrades = append(dash.RecentGrades, *grade)
	}

	if dash.Average, err = s.repo.Grade().AverageForStudent(ctx, studentID); err != nil {
		return nil, err
	}

	return dash, nil
}
