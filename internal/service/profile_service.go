package service

import (
	"context"
	"errors"
	"strings"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/repository"
	"gorm.io/gorm"
)

type ProfileUpdates struct {
	Name    string
	Phone   *string
	Company *string
}

type ProfileService interface {
	Register(ctx context.Context, uid, email, name string, role model.Role) (*model.Profile, error)
	Get(ctx context.Context, uid string) (*model.Profile, error)
	Update(ctx context.Context, principal *model.Profile, updates ProfileUpdates) (*model.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Register(ctx context.Context, uid, email, name string, role model.Role) (*model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "required")
	}
	if !role.Valid() {
		return nil, invalid("role", "must be buyer or seller")
	}
	p := &model.Profile{
		ID:    uid,
		Email: email,
		Role:  role,
		Name:  name,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) Get(ctx context.Context, uid string) (*model.Profile, error) {
	p, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update merges name, phone and company. Role and email never change here.
func (s *profileService) Update(ctx context.Context, principal *model.Profile, updates ProfileUpdates) (*model.Profile, error) {
	name := strings.TrimSpace(updates.Name)
	if name == "" {
		return nil, invalid("name", "required")
	}
	principal.Name = name
	principal.Phone = trimPtr(updates.Phone)
	principal.Company = trimPtr(updates.Company)
	if err := s.repo.Update(ctx, principal); err != nil {
		return nil, err
	}
	return principal, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
