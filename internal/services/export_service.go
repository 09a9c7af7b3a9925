package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ClassGradeSheet renders an xlsx workbook with one row per student and one
// column per assignment of the class's courses. Where a student has several
// grades for an assignment, the most recent one is shown. The teacher must be
// assigned to the class.
func (s *exportService) ClassGradeSheet(ctx context.Context, teacherID, classID uint) ([]byte, error) {
	assigned, err := s.repo.Class().HasTeacher(ctx, classID, teacherID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, NewPermissionError(teacherID, classID, "class", "export grades", "teacher is not assigned to this class")
	}

	class, err := s.repo.Class().GetByID(ctx, classID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	students, err := s.repo.User().FindStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Course().FindByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	var assignments []*models.Assignment
	if len(courses) > 0 {
		courseIDs := make([]uint, 0, len(courses))
		for _, course := range courses {
			courseIDs = append(courseIDs, course.ID)
		}
		if assignments, err = s.repo.Assignment().FindByCourses(ctx, courseIDs); err != nil {
			return nil, err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Grades"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []interface{}{"Student", "Username"}
	for _, assignment := range assignments {
		headers = append(headers, assignment.Title)
	}
	headers = append(headers, "Average")
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, student := range students {
		grades, err := s.repo.Grade().FindByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		// newest first, so the first grade seen per assignment wins
		latest := make(map[uint]float64, len(grades))
		for _, grade := range grades {
			if _, ok := latest[grade.AssignmentID]; !ok {
				latest[grade.AssignmentID] = grade.Value
			}
		}

		average, err := s.repo.Grade().AverageForStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		row := []interface{}{student.FullName(), student.Username}
		for _, assignment := range assignments {
			if value, ok := latest[assignment.ID]; ok {
				row = append(row, value)
			} else {
				row = append(row, "")
			}
		}
		row = append(row, average)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	s.logger.Info("grade sheet exported",
		"class_id", classID,
		"class_name", class.Name,
		"students", len(students),
		"assignments", len(assignments))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ClassRoster renders the student list of a class
func (s *exportService) ClassRoster(ctx context.Context, classID uint) ([]byte, error) {
	class, err := s.repo.Class().GetByID(ctx, classID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	students, err := s.repo.User().FindStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Roster"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []interface{}{"#", "Last name", "First name", "Username", "Email", "Active"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, student := range students {
		row := []interface{}{i + 1, student.LastName, student.FirstName, student.Username, student.Email, student.IsActive}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	s.logger.Info("roster exported",
		"class_id", classID,
		"class_name", class.Name,
		"students", len(students))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
