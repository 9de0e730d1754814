package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chorok-lab/carbon-exchange/internal/config"
	"github.com/chorok-lab/carbon-exchange/internal/db"
	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedListing struct {
	CreditType  model.CreditType
	Quantity    int64
	UnitPrice   int64
	Description string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.DBConfigured() {
		return fmt.Errorf("DB_HOST must be set to seed")
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Profile{}, &model.Listing{}, &model.Transaction{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(ctx, gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("listings already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	seller := model.Profile{
		ID:      "seed-seller",
		Email:   "seller@example.com",
		Role:    model.RoleSeller,
		Name:    "한빛에너지",
		Company: ptr("Hanbit Energy Co."),
	}
	buyer := model.Profile{
		ID:    "seed-buyer",
		Email: "buyer@example.com",
		Role:  model.RoleBuyer,
		Name:  "김민수",
	}

	listings := buildSeedListings()

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range []model.Profile{seller, buyer} {
			if err := tx.Where("id = ?", p.ID).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("seed profile %s: %w", p.ID, err)
			}
		}
		for _, sl := range listings {
			desc := sl.Description
			l := model.Listing{
				ID:          uuid.NewString(),
				SellerID:    seller.ID,
				CreditType:  sl.CreditType,
				Quantity:    sl.Quantity,
				UnitPrice:   sl.UnitPrice,
				Description: &desc,
				Status:      model.ListingStatusAvailable,
			}
			if err := tx.Create(&l).Error; err != nil {
				return fmt.Errorf("seed listing: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d listings", len(listings))
	return nil
}

func buildSeedListings() []seedListing {
	return []seedListing{
		{model.CreditTypeKOC, 100, 15000, "2024년 태양광 발전 상쇄분"},
		{model.CreditTypeKOC, 250, 14500, "산림 조성 사업 크레딧"},
		{model.CreditTypeKCU, 50, 18000, "할당량 잉여분"},
		{model.CreditTypeKCU, 500, 17200, "대량 매도, 분할 협의 불가"},
	}
}

func shouldSeed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.Listing{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count listings: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	force := os.Getenv("FORCE_SEED")
	return strings.EqualFold(force, "true"), nil
}

func ptr(s string) *string {
	return &s
}
