package services

import (
	"context"
	"testing"

	"github.com/akalan-edu/portal-service/internal/cache"
	"github.com/akalan-edu/portal-service/internal/email"
	"github.com/akalan-edu/portal-service/internal/events"
	"github.com/akalan-edu/portal-service/internal/validator"
)

func newManagerFixture(t *testing.T) ServiceManager {
	t.Helper()
	return NewServiceManager(
		nil,
		newFakeRepository(),
		testLogger(),
		validator.New(),
		cache.NewCacheManager(nil),
		events.NewMockEventPublisher(testLogger()),
		email.NewConsoleSenderSilent(),
		ServiceManagerConfig{},
	)
}

func TestServiceManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	manager := newManagerFixture(t)

	t.Run("getters panic before initialize", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic from uninitialized getter")
			}
		}()
		manager.Account()
	})

	t.Run("health check fails before initialize", func(t *testing.T) {
		if err := manager.HealthCheck(ctx); err == nil {
			t.Error("expected health check to fail before initialize")
		}
	})

	if err := manager.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	t.Run("all services wired", func(t *testing.T) {
		if manager.Account() == nil {
			t.Error("Account service should be wired")
		}
		if manager.Class() == nil {
			t.Error("Class service should be wired")
		}
		if manager.Invitation() == nil {
			t.Error("Invitation service should be wired")
		}
		if manager.Enrollment() == nil {
			t.Error("Enrollment service should be wired")
		}
		if manager.Course() == nil {
			t.Error("Course service should be wired")
		}
		if manager.Assignment() == nil {
			t.Error("Assignment service should be wired")
		}
		if manager.Grading() == nil {
			t.Error("Grading service should be wired")
		}
		if manager.Dashboard() == nil {
			t.Error("Dashboard service should be wired")
		}
		if manager.Export() == nil {
			t.Error("Export service should be wired")
		}
		if manager.Notification() == nil {
			t.Error("Notification service should be wired")
		}
	})

	t.Run("second initialize is a no-op", func(t *testing.T) {
		if err := manager.Initialize(ctx); err != nil {
			t.Fatalf("repeated Initialize failed: %v", err)
		}
	})

	// Cache without a client degrades to a warning, not a failure
	if err := manager.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	if err := manager.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	t.Run("health check fails after shutdown", func(t *testing.T) {
		if err := manager.HealthCheck(ctx); err == nil {
			t.Error("expected health check to fail after shutdown")
		}
	})

	t.Run("second shutdown is a no-op", func(t *testing.T) {
		if err := manager.Shutdown(ctx); err != nil {
			t.Fatalf("repeated Shutdown failed: %v", err)
		}
	})
}
