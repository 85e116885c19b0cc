package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"notaria-server/intake-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes and seeds baseline rows.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.Conversation{},
		&entities.Message{},
		&entities.ServiceRequest{},
		&entities.Service{},
		&entities.BlogPost{},
		&entities.ContactRequest{},
	); err != nil {
		return err
	}

	return seedServices(ctx, db, log)
}

// seedServices inserts the public services catalog when the table is empty.
func seedServices(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entities.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Int64("rows", count).Msg("services table already seeded")
		return nil
	}

	seed := []entities.Service{
		{
			Title:        "Compra Venta",
			Description:  "Escrituración de compraventa de bienes inmuebles, con revisión de títulos y gravámenes.",
			IconName:     "home",
			DisplayOrder: 1,
		},
		{
			Title:        "Donación",
			Description:  "Formalización de donaciones de bienes entre vivos, incluyendo avalúos y constancias fiscales.",
			IconName:     "gift",
			DisplayOrder: 2,
		},
		{
			Title:        "Poder General",
			Description:  "Otorgamiento de poderes generales y especiales con identificación de otorgante y apoderado.",
			IconName:     "file-text",
			DisplayOrder: 3,
		},
	}
	if err := db.WithContext(ctx).Create(&seed).Error; err != nil {
		return err
	}

	log.Info().Int("rows", len(seed)).Msg("seeded services catalog")
	return nil
}
