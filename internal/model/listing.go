package model

import "time"

type CreditType string

const (
	// CreditTypeKOC is a Korea Offset Credit.
	CreditTypeKOC CreditType = "KOC"
	// CreditTypeKCU is a Korea Credit Unit.
	CreditTypeKCU CreditType = "KCU"
)

func (t CreditType) Valid() bool {
	return t == CreditTypeKOC || t == CreditTypeKCU
}

type ListingStatus string

// Both sold and deleted are terminal; a listing never leaves either state.
const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusDeleted   ListingStatus = "deleted"
)

// Listing is an offered quantity of carbon credit at a unit price. Rows are
// never removed; deletion is the deleted status.
type Listing struct {
	ID          string        `gorm:"primaryKey;size:36"`
	SellerID    string        `gorm:"column:seller_id;size:128;index;not null"`
	CreditType  CreditType    `gorm:"column:credit_type;size:8;not null"`
	Quantity    int64         `gorm:"not null"`
	UnitPrice   int64         `gorm:"column:unit_price;not null"`
	Description *string       `gorm:"type:text"`
	Status      ListingStatus `gorm:"size:16;index;not null"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listings"
}
