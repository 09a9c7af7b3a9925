package repositories

import "context"

// Repository aggregates all per-domain repository interfaces
type Repository interface {
	// Account domain
	User() UserRepository

	// Class domain
	Class() ClassRepository
	Invitation() InvitationRepository

	// Course domain
	Course() CourseRepository
	Enrollment() EnrollmentRepository

	// Assignment domain
	Assignment() AssignmentRepository
	Submission() SubmissionRepository
	Grade() GradeRepository

	// Dashboard domain
	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
