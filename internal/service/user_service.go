package service

import (
	"context"
	"time"

	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/repository"
)

// DashboardStats aggregates the numbers shown on the admin dashboard.
type DashboardStats struct {
	TotalAvengers     int64
	ActiveMissions    int64
	UnreadFeedback    int64
	PaymentsThisMonth float64
}

// UserService exposes member lookups and admin management operations.
type UserService struct {
	users        repository.UserRepository
	missions     repository.MissionRepository
	feedback     repository.FeedbackRepository
	transactions repository.TransactionRepository
}

// NewUserService builds the service.
func NewUserService(
	users repository.UserRepository,
	missions repository.MissionRepository,
	feedback repository.FeedbackRepository,
	transactions repository.TransactionRepository,
) *UserService {
	return &UserService{users: users, missions: missions, feedback: feedback, transactions: transactions}
}

// Get returns the member by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListAvengers returns all members with the AVENGER role.
func (s *UserService) ListAvengers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleAvenger)
}

// SetStatus updates a member's alive flag.
func (s *UserService) SetStatus(ctx context.Context, id string, alive bool) error {
	return s.users.UpdateStatus(ctx, id, alive)
}

// Stats computes the admin dashboard aggregates. Payments are summed over
// SALARY transactions in the current calendar month.
func (s *UserService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalAvengers, err := s.users.CountByRole(ctx, domain.RoleAvenger)
	if err != nil {
		return nil, err
	}
	activeMissions, err := s.missions.CountByStatus(ctx, domain.MissionStatusOngoing)
	if err != nil {
		return nil, err
	}
	unreadFeedback, err := s.feedback.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)
	payments, err := s.transactions.SumByTypeBetween(ctx, domain.TransactionTypeSalary, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalAvengers:     totalAvengers,
		ActiveMissions:    activeMissions,
		UnreadFeedback:    unreadFeedback,
		PaymentsThisMonth: payments,
	}, nil
}
