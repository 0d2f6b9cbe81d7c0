package service

import (
	"fmt"

	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/repository"
)

// UserService handles user-profile lookups and updates.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetOrCreate returns the profile, seeding a minimal row for unknown users
// so the app always has data to render.
func (s *UserService) GetOrCreate(userID string) (*models.UserProfile, error) {
	user, err := s.userRepo.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	seed := &models.UserProfile{UserID: userID, Name: userID}
	if err := s.userRepo.Insert(seed); err != nil {
		return nil, fmt.Errorf("failed to seed user: %w", err)
	}

	user, err = s.userRepo.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

// Update applies the provided fields and returns the stored profile.
func (s *UserService) Update(userID string, update models.UserProfileUpdate) (*models.UserProfile, error) {
	if err := s.userRepo.Upsert(userID, update); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user, err := s.userRepo.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}
