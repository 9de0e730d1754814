package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"gorm.io/gorm"
)

// In-memory implementations used when no database is configured. They return
// gorm.ErrRecordNotFound for missing rows so the service layer inspects one
// error regardless of the backing store.

type memoryListingRepository struct {
	mu       sync.Mutex
	listings map[string]model.Listing
}

func NewMemoryListingRepository() ListingRepository {
	return &memoryListingRepository{listings: make(map[string]model.Listing)}
}

func (r *memoryListingRepository) Create(ctx context.Context, l *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// gorm stamps these on insert; the fallback store does it here
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	l.UpdatedAt = l.CreatedAt
	r.listings[l.ID] = *l
	return nil
}

func (r *memoryListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *memoryListingRepository) ListAvailable(ctx context.Context) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.Listing
	for _, l := range r.listings {
		if l.Status == model.ListingStatusAvailable {
			list = append(list, l)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *memoryListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.Listing
	for _, l := range r.listings {
		if l.SellerID == sellerID && l.Status != model.ListingStatusDeleted {
			list = append(list, l)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *memoryListingRepository) TransitionStatus(ctx context.Context, id string, from, to model.ListingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok || l.Status != from {
		return 0, nil
	}
	l.Status = to
	r.listings[id] = l
	return 1, nil
}

func sortNewestFirst(list []model.Listing) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

type memoryTransactionRepository struct {
	mu  sync.Mutex
	log []model.Transaction
}

func NewMemoryTransactionRepository() TransactionRepository {
	return &memoryTransactionRepository{}
}

func (r *memoryTransactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.log = append(r.log, *t)
	return nil
}

func (r *memoryTransactionRepository) ListByParty(ctx context.Context, uid string) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.Transaction
	for i := len(r.log) - 1; i >= 0; i-- {
		t := r.log[i]
		if t.BuyerID == uid || t.SellerID == uid {
			list = append(list, t)
		}
	}
	return list, nil
}

type memoryProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]model.Profile
}

func NewMemoryProfileRepository() ProfileRepository {
	return &memoryProfileRepository{profiles: make(map[string]model.Profile)}
}

func (r *memoryProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	r.profiles[p.ID] = *p
	return nil
}

func (r *memoryProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memoryProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.UpdatedAt = time.Now()
	r.profiles[p.ID] = *p
	return nil
}
