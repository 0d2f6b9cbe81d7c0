package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/repository"
)

// ProtectorService handles emergency-contact management.
type ProtectorService struct {
	protectorRepo *repository.ProtectorRepository
}

// NewProtectorService creates a new protector service
func NewProtectorService(protectorRepo *repository.ProtectorRepository) *ProtectorService {
	return &ProtectorService{protectorRepo: protectorRepo}
}

// List returns a user's protectors in insertion order.
func (s *ProtectorService) List(userID string) ([]models.Protector, error) {
	protectors, err := s.protectorRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list protectors: %w", err)
	}
	if protectors == nil {
		protectors = []models.Protector{}
	}
	return protectors, nil
}

// Add creates a new protector for a user.
func (s *ProtectorService) Add(req models.ProtectorRequest) (*models.Protector, error) {
	protector := &models.Protector{
		ID:     uuid.NewString(),
		UserID: req.UserID,
		Name:   req.Name,
		Phone:  req.Phone,
		Photo:  req.Photo,
	}

	if err := s.protectorRepo.Insert(protector); err != nil {
		return nil, fmt.Errorf("failed to add protector: %w", err)
	}
	return protector, nil
}

// Remove deletes a protector by id. Returns false when the id is unknown.
func (s *ProtectorService) Remove(id string) (bool, error) {
	removed, err := s.protectorRepo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("failed to remove protector: %w", err)
	}
	return removed, nil
}
