package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chorok-lab/carbon-exchange/internal/metrics"
	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateListingInput struct {
	CreditType  model.CreditType
	Quantity    int64
	UnitPrice   int64
	Description *string
}

// ListingWithSeller carries a listing together with the seller's public
// attributes for the open marketplace view.
type ListingWithSeller struct {
	Listing       model.Listing
	SellerName    string
	SellerCompany *string
}

type ListingService interface {
	Create(ctx context.Context, principal *model.Profile, in CreateListingInput) (*model.Listing, error)
	ListAvailable(ctx context.Context) ([]ListingWithSeller, error)
	ListMine(ctx context.Context, principal *model.Profile) ([]model.Listing, error)
	Retire(ctx context.Context, principal *model.Profile, listingID string) (*model.Listing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
}

func NewListingService(listingRepo repository.ListingRepository, profileRepo repository.ProfileRepository) ListingService {
	return &listingService{listingRepo: listingRepo, profileRepo: profileRepo}
}

func (s *listingService) Create(ctx context.Context, principal *model.Profile, in CreateListingInput) (*model.Listing, error) {
	if principal.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	if !in.CreditType.Valid() {
		return nil, invalid("creditType", "must be KOC or KCU")
	}
	if in.Quantity <= 0 {
		return nil, invalid("quantity", "must be positive")
	}
	if in.UnitPrice <= 0 {
		return nil, invalid("unitPrice", "must be positive")
	}
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		if trimmed == "" {
			in.Description = nil
		} else {
			in.Description = &trimmed
		}
	}

	l := &model.Listing{
		ID:          uuid.NewString(),
		SellerID:    principal.ID,
		CreditType:  in.CreditType,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Description: in.Description,
		Status:      model.ListingStatusAvailable,
	}
	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	metrics.ListingsCreated.Inc()
	return l, nil
}

func (s *listingService) ListAvailable(ctx context.Context) ([]ListingWithSeller, error) {
	listings, err := s.listingRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ListingWithSeller, 0, len(listings))
	for _, l := range listings {
		row := ListingWithSeller{Listing: l}
		seller, err := s.profileRepo.FindByID(ctx, l.SellerID)
		switch {
		case err == nil:
			row.SellerName = seller.Name
			row.SellerCompany = seller.Company
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: load seller profile: %v", ErrUpstream, err)
		}
		resp = append(resp, row)
	}
	return resp, nil
}

func (s *listingService) ListMine(ctx context.Context, principal *model.Profile) ([]model.Listing, error) {
	return s.listingRepo.ListBySeller(ctx, principal.ID)
}

func (s *listingService) Retire(ctx context.Context, principal *model.Profile, listingID string) (*model.Listing, error) {
	l, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.SellerID != principal.ID {
		return nil, ErrForbidden
	}
	rows, err := s.listingRepo.TransitionStatus(ctx, listingID, model.ListingStatusAvailable, model.ListingStatusDeleted)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrConflict
	}
	l.Status = model.ListingStatusDeleted
	return l, nil
}
