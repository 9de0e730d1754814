package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chorok-lab/carbon-exchange/internal/metrics"
	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionWithDetails annotates a ledger row for the history view.
type TransactionWithDetails struct {
	Transaction      model.Transaction
	CreditType       model.CreditType
	CounterpartyName string
	// Side is "bought" when the principal was the buyer, "sold" otherwise.
	Side string
}

type PurchaseService interface {
	Purchase(ctx context.Context, principal *model.Profile, listingID string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, principal *model.Profile) ([]TransactionWithDetails, error)
}

type purchaseService struct {
	listingRepo repository.ListingRepository
	txRepo      repository.TransactionRepository
	profileRepo repository.ProfileRepository
}

func NewPurchaseService(listingRepo repository.ListingRepository, txRepo repository.TransactionRepository, profileRepo repository.ProfileRepository) PurchaseService {
	return &purchaseService{listingRepo: listingRepo, txRepo: txRepo, profileRepo: profileRepo}
}

// Purchase moves a listing available -> sold and appends exactly one ledger
// row. The transition is a compare-and-set on the current status, so of two
// concurrent purchases one loses and observes ErrConflict.
func (s *purchaseService) Purchase(ctx context.Context, principal *model.Profile, listingID string) (*model.Transaction, error) {
	if principal.Role != model.RoleBuyer {
		return nil, ErrForbidden
	}
	l, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.SellerID == principal.ID {
		return nil, ErrForbidden
	}
	if l.Status != model.ListingStatusAvailable {
		return nil, ErrConflict
	}

	rows, err := s.listingRepo.TransitionStatus(ctx, listingID, model.ListingStatusAvailable, model.ListingStatusSold)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		metrics.PurchaseConflicts.Inc()
		return nil, ErrConflict
	}

	t := &model.Transaction{
		ID:          uuid.NewString(),
		ListingID:   l.ID,
		BuyerID:     principal.ID,
		SellerID:    l.SellerID,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		TotalAmount: l.Quantity * l.UnitPrice,
	}
	if err := s.txRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("%w: record transaction: %v", ErrUpstream, err)
	}
	metrics.PurchasesCompleted.Inc()
	return t, nil
}

func (s *purchaseService) ListTransactions(ctx context.Context, principal *model.Profile) ([]TransactionWithDetails, error) {
	list, err := s.txRepo.ListByParty(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]TransactionWithDetails, 0, len(list))
	for _, t := range list {
		row := TransactionWithDetails{Transaction: t, Side: "sold"}
		counterparty := t.BuyerID
		if t.BuyerID == principal.ID {
			row.Side = "bought"
			counterparty = t.SellerID
		}
		// a missing joined row is tolerated, a failing store is not
		l, err := s.listingRepo.FindByID(ctx, t.ListingID)
		switch {
		case err == nil:
			row.CreditType = l.CreditType
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: load listing: %v", ErrUpstream, err)
		}
		p, err := s.profileRepo.FindByID(ctx, counterparty)
		switch {
		case err == nil:
			row.CounterpartyName = p.Name
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: load counterparty profile: %v", ErrUpstream, err)
		}
		resp = append(resp, row)
	}
	return resp, nil
}
