package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/akalan-edu/portal-service/internal/models"
	"github.com/akalan-edu/portal-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository used across the
// service tests. It implements enough behavior to exercise the business
// rules: uniqueness, ordering and the enrollment unique constraint.
type fakeRepository struct {
	users       *fakeUserRepo
	classes     *fakeClassRepo
	invitations *fakeInvitationRepo
	courses     *fakeCourseRepo
	enrollments *fakeEnrollmentRepo
	assignments *fakeAssignmentRepo
	submissions *fakeSubmissionRepo
	grades      *fakeGradeRepo
	dashboard   *fakeDashboardRepo
}

func newFakeRepository() *fakeRepository {
	r := &fakeRepository{
		users:       &fakeUserRepo{byID: map[uint]*models.User{}},
		classes:     &fakeClassRepo{byID: map[uint]*models.Class{}, teachers: map[uint]map[uint]bool{}},
		invitations: &fakeInvitationRepo{byID: map[uint]*models.Invitation{}},
		courses:     &fakeCourseRepo{byID: map[uint]*models.Course{}},
		enrollments: &fakeEnrollmentRepo{byID: map[uint]*models.Enrollment{}},
		assignments: &fakeAssignmentRepo{byID: map[uint]*models.Assignment{}},
		submissions: &fakeSubmissionRepo{byID: map[uint]*models.Submission{}},
		grades:      &fakeGradeRepo{byID: map[uint]*models.Grade{}},
	}
	r.users.repo = r
	r.courses.repo = r
	r.assignments.repo = r
	r.dashboard = &fakeDashboardRepo{repo: r}
	return r
}

func (r *fakeRepository) User() repositories.UserRepository             { return r.users }
func (r *fakeRepository) Class() repositories.ClassRepository           { return r.classes }
func (r *fakeRepository) Invitation() repositories.InvitationRepository { return r.invitations }
func (r *fakeRepository) Course() repositories.CourseRepository         { return r.courses }
func (r *fakeRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollments }
func (r *fakeRepository) Assignment() repositories.AssignmentRepository { return r.assignments }
func (r *fakeRepository) Submission() repositories.SubmissionRepository { return r.submissions }
func (r *fakeRepository) Grade() repositories.GradeRepository           { return r.grades }
func (r *fakeRepository) Dashboard() repositories.DashboardRepository   { return r.dashboard }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct {
	repo   *fakeRepository
	byID   map[uint]*models.User
	nextID uint
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.byID {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.ClassID != nil && (u.ClassID == nil || *u.ClassID != *filters.ClassID) {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) FindByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	users, _, err := f.List(ctx, repositories.UserFilters{Role: &role})
	return users, err
}

func (f *fakeUserRepo) FindStudentsByClass(ctx context.Context, classID uint) ([]*models.User, error) {
	role := models.RoleStudent
	users, _, err := f.List(ctx, repositories.UserFilters{Role: &role, ClassID: &classID})
	return users, err
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// ===== CLASSES =====

type fakeClassRepo struct {
	byID     map[uint]*models.Class
	teachers map[uint]map[uint]bool
	nextID   uint
}

func (f *fakeClassRepo) Create(ctx context.Context, class *models.Class) error {
	f.nextID++
	class.ID = f.nextID
	copied := *class
	f.byID[class.ID] = &copied
	return nil
}

func (f *fakeClassRepo) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClassRepo) GetByIDWithMembers(ctx context.Context, id uint) (*models.Class, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeClassRepo) Update(ctx context.Context, class *models.Class) error {
	if _, ok := f.byID[class.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *class
	f.byID[class.ID] = &copied
	return nil
}

func (f *fakeClassRepo) Delete(ctx context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeClassRepo) List(ctx context.Context, limit, offset int) ([]*models.Class, int64, error) {
	var out []*models.Class
	for _, c := range f.byID {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeClassRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, c := range f.byID {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClassRepo) AddTeacher(ctx context.Context, classID, teacherID uint) error {
	if f.teachers[classID] == nil {
		f.teachers[classID] = map[uint]bool{}
	}
	f.teachers[classID][teacherID] = true
	return nil
}

func (f *fakeClassRepo) RemoveTeacher(ctx context.Context, classID, teacherID uint) error {
	delete(f.teachers[classID], teacherID)
	return nil
}

func (f *fakeClassRepo) HasTeacher(ctx context.Context, classID, teacherID uint) (bool, error) {
	return f.teachers[classID][teacherID], nil
}

func (f *fakeClassRepo) FindByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	var out []*models.Class
	for classID, members := range f.teachers {
		if members[teacherID] {
			if c, ok := f.byID[classID]; ok {
				copied := *c
				out = append(out, &copied)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== INVITATIONS =====

type fakeInvitationRepo struct {
	byID   map[uint]*models.Invitation
	nextID uint
}

func (f *fakeInvitationRepo) Create(ctx context.Context, invitation *models.Invitation) error {
	f.nextID++
	invitation.ID = f.nextID
	invitation.CreatedAt = time.Now()
	copied := *invitation
	f.byID[invitation.ID] = &copied
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvitationRepo) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	for _, inv := range f.byID {
		if inv.Token == token {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInvitationRepo) Update(ctx context.Context, invitation *models.Invitation) error {
	if _, ok := f.byID[invitation.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *invitation
	f.byID[invitation.ID] = &copied
	return nil
}

func (f *fakeInvitationRepo) List(ctx context.Context, filters repositories.InvitationFilters) ([]*models.Invitation, int64, error) {
	var out []*models.Invitation
	for _, inv := range f.byID {
		if filters.Role != nil && inv.Role != *filters.Role {
			continue
		}
		if filters.Status != nil && inv.Status != *filters.Status {
			continue
		}
		copied := *inv
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeInvitationRepo) ExistsPending(ctx context.Context, email string, role models.UserRole) (bool, error) {
	for _, inv := range f.byID {
		if strings.EqualFold(inv.Email, email) && inv.Role == role && inv.Status == models.InvitationPending {
			return true, nil
		}
	}
	return false, nil
}

// ===== COURSES =====

type fakeCourseRepo struct {
	repo   *fakeRepository
	byID   map[uint]*models.Course
	nextID uint
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	f.nextID++
	course.ID = f.nextID
	copied := *course
	f.byID[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := f.byID[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *course
	f.byID[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, c := range f.byID {
		if filters.TeacherID != nil && c.TeacherID != *filters.TeacherID {
			continue
		}
		if filters.ClassID != nil && (c.ClassID == nil || *c.ClassID != *filters.ClassID) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeCourseRepo) FindByClass(ctx context.Context, classID uint) ([]*models.Course, error) {
	courses, _, err := f.List(ctx, repositories.CourseFilters{ClassID: &classID})
	return courses, err
}

func (f *fakeCourseRepo) FindByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	courses, _, err := f.List(ctx, repositories.CourseFilters{TeacherID: &teacherID})
	return courses, err
}

func (f *fakeCourseRepo) FindByStudent(ctx context.Context, studentID uint) ([]*models.Course, error) {
	var out []*models.Course
	for _, e := range f.repo.enrollments.byID {
		if e.StudentID == studentID {
			if c, ok := f.byID[e.CourseID]; ok {
				copied := *c
				out = append(out, &copied)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== ENROLLMENTS =====

type fakeEnrollmentRepo struct {
	byID   map[uint]*models.Enrollment
	nextID uint
}

func (f *fakeEnrollmentRepo) GetOrCreate(ctx context.Context, courseID, studentID uint) (*models.Enrollment, bool, error) {
	for _, e := range f.byID {
		if e.CourseID == courseID && e.StudentID == studentID {
			copied := *e
			return &copied, false, nil
		}
	}
	f.nextID++
	e := &models.Enrollment{
		ID:        f.nextID,
		CourseID:  courseID,
		StudentID: studentID,
		CreatedAt: time.Now(),
	}
	f.byID[e.ID] = e
	copied := *e
	return &copied, true, nil
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, courseID, studentID uint) error {
	for id, e := range f.byID {
		if e.CourseID == courseID && e.StudentID == studentID {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeEnrollmentRepo) DeleteForCourseAndStudents(ctx context.Context, courseID uint, studentIDs []uint) error {
	members := map[uint]bool{}
	for _, id := range studentIDs {
		members[id] = true
	}
	for id, e := range f.byID {
		if e.CourseID == courseID && members[e.StudentID] {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, courseID, studentID uint) (bool, error) {
	for _, e := range f.byID {
		if e.CourseID == courseID && e.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentRepo) FindByCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.byID {
		if e.CourseID == courseID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEnrollmentRepo) FindByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.byID {
		if e.StudentID == studentID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEnrollmentRepo) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	enrollments, err := f.FindByCourse(ctx, courseID)
	return int64(len(enrollments)), err
}

// ===== ASSIGNMENTS =====

type fakeAssignmentRepo struct {
	repo   *fakeRepository
	byID   map[uint]*models.Assignment
	nextID uint
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	f.nextID++
	assignment.ID = f.nextID
	copied := *assignment
	f.byID[assignment.ID] = &copied
	return nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	if _, ok := f.byID[assignment.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *assignment
	f.byID[assignment.ID] = &copied
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	var out []*models.Assignment
	for _, a := range f.byID {
		if filters.CourseID != nil && a.CourseID != *filters.CourseID {
			continue
		}
		if filters.TeacherID != nil {
			course, ok := f.repo.courses.byID[a.CourseID]
			if !ok || course.TeacherID != *filters.TeacherID {
				continue
			}
		}
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeAssignmentRepo) FindByCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error) {
	assignments, _, err := f.List(ctx, repositories.AssignmentFilters{CourseID: &courseID})
	return assignments, err
}

func (f *fakeAssignmentRepo) FindByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error) {
	members := map[uint]bool{}
	for _, id := range courseIDs {
		members[id] = true
	}
	var out []*models.Assignment
	for _, a := range f.byID {
		if members[a.CourseID] {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== SUBMISSIONS =====

type fakeSubmissionRepo struct {
	byID   map[uint]*models.Submission
	nextID uint
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	for _, s := range f.byID {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	submission.ID = f.nextID
	copied := *submission
	f.byID[submission.ID] = &copied
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error) {
	for _, s := range f.byID {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSubmissionRepo) FindByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	var out []*models.Submission
	for _, s := range f.byID {
		if s.AssignmentID == assignmentID {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSubmissionRepo) FindByStudent(ctx context.Context, studentID uint) ([]*models.Submission, error) {
	var out []*models.Submission
	for _, s := range f.byID {
		if s.StudentID == studentID {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSubmissionRepo) Exists(ctx context.Context, assignmentID, studentID uint) (bool, error) {
	_, err := f.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	return err == nil, nil
}

// ===== GRADES =====

type fakeGradeRepo struct {
	byID   map[uint]*models.Grade
	nextID uint
}

func (f *fakeGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	f.nextID++
	grade.ID = f.nextID
	grade.CreatedAt = time.Now()
	copied := *grade
	f.byID[grade.ID] = &copied
	return nil
}

func (f *fakeGradeRepo) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGradeRepo) Update(ctx context.Context, grade *models.Grade) error {
	if _, ok := f.byID[grade.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *grade
	f.byID[grade.ID] = &copied
	return nil
}

func (f *fakeGradeRepo) Delete(ctx context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeGradeRepo) List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error) {
	var out []*models.Grade
	for _, g := range f.byID {
		if filters.StudentID != nil && g.StudentID != *filters.StudentID {
			continue
		}
		copied := *g
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeGradeRepo) FindByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error) {
	grades, _, err := f.List(ctx, repositories.GradeFilters{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	// newest first, matching the SQL ordering
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID > grades[j].ID })
	return grades, nil
}

func (f *fakeGradeRepo) AverageForStudent(ctx context.Context, studentID uint) (float64, error) {
	var sum float64
	var n int
	for _, g := range f.byID {
		if g.StudentID == studentID {
			sum += g.Value
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// ===== DASHBOARD =====

type fakeDashboardRepo struct {
	repo *fakeRepository
}

func (f *fakeDashboardRepo) CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range f.repo.users.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeDashboardRepo) CountClasses(ctx context.Context) (int64, error) {
	return int64(len(f.repo.classes.byID)), nil
}

func (f *fakeDashboardRepo) CountCourses(ctx context.Context) (int64, error) {
	return int64(len(f.repo.courses.byID)), nil
}

func (f *fakeDashboardRepo) CountAssignments(ctx context.Context) (int64, error) {
	return int64(len(f.repo.assignments.byID)), nil
}

func (f *fakeDashboardRepo) CountEnrollments(ctx context.Context) (int64, error) {
	return int64(len(f.repo.enrollments.byID)), nil
}

func (f *fakeDashboardRepo) CountSubmissions(ctx context.Context) (int64, error) {
	return int64(len(f.repo.submissions.byID)), nil
}

func (f *fakeDashboardRepo) GetSubmissionTimeliness(ctx context.Context) (*repositories.SubmissionTimeliness, error) {
	result := &repositories.SubmissionTimeliness{}
	for _, s := range f.repo.submissions.byID {
		a, ok := f.repo.assignments.byID[s.AssignmentID]
		if !ok {
			continue
		}
		if !s.SubmittedAt.After(a.Deadline) {
			result.OnTime++
		} else {
			result.Late++
		}
	}
	return result, nil
}

func (f *fakeDashboardRepo) CountCoursesByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var n int64
	for _, c := range f.repo.courses.byID {
		if c.TeacherID == teacherID {
			n++
		}
	}
	return n, nil
}

func (f *fakeDashboardRepo) CountAssignmentsByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var n int64
	for _, a := range f.repo.assignments.byID {
		if c, ok := f.repo.courses.byID[a.CourseID]; ok && c.TeacherID == teacherID {
			n++
		}
	}
	return n, nil
}
