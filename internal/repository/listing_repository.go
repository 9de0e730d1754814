package repository

import (
	"context"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, l *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	ListAvailable(ctx context.Context) ([]model.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Listing, error)
	// TransitionStatus sets status to `to` only when the current status is
	// `from`, and reports how many rows changed. Zero means the listing is
	// absent or the precondition failed; the caller decides which.
	TransitionStatus(ctx context.Context, id string, from, to model.ListingStatus) (int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, l *model.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	var l model.Listing
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) ListAvailable(ctx context.Context) ([]model.Listing, error) {
	var list []model.Listing
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.ListingStatusAvailable).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Listing, error) {
	var list []model.Listing
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND status <> ?", sellerID, model.ListingStatusDeleted).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *listingRepository) TransitionStatus(ctx context.Context, id string, from, to model.ListingStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
