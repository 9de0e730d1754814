package model

import "time"

// Transaction records one completed purchase. The ledger is append-only:
// rows are inserted once and never updated.
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:36"`
	ListingID   string    `gorm:"column:listing_id;size:36;index;not null"`
	BuyerID     string    `gorm:"column:buyer_id;size:128;index;not null"`
	SellerID    string    `gorm:"column:seller_id;size:128;index;not null"`
	Quantity    int64     `gorm:"not null"`
	UnitPrice   int64     `gorm:"column:unit_price;not null"`
	TotalAmount int64     `gorm:"column:total_amount;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
