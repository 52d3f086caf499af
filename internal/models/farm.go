package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// FARM RECORDS (read-only in this service)
// ============================================================================

type Farm struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Location  *string   `json:"location,omitempty" db:"location"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Field is a section of a farm that crops are planted on.
type Field struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FarmID    uuid.UUID `json:"farm_id" db:"farm_id"`
	Name      string    `json:"name" db:"name"`
	SizeAcres float64   `json:"size_acres" db:"size_acres"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

type Crop struct {
	ID                       uuid.UUID `json:"id" db:"id"`
	Name                     string    `json:"name" db:"name"`
	GrowingSeason            *string   `json:"growing_season,omitempty" db:"growing_season"`
	AverageGrowingPeriodDays *int      `json:"average_growing_period_days,omitempty" db:"average_growing_period_days"`
}

type CropCycle struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	FieldID           uuid.UUID  `json:"field_id" db:"field_id"`
	FieldName         string     `json:"field_name" db:"field_name"`
	CropID            uuid.UUID  `json:"crop_id" db:"crop_id"`
	CropName          string     `json:"crop_name" db:"crop_name"`
	PlantingDate      time.Time  `json:"planting_date" db:"planting_date"`
	HarvestDate       *time.Time `json:"harvest_date,omitempty" db:"harvest_date"`
	ActualHarvestDate *time.Time `json:"actual_harvest_date,omitempty" db:"actual_harvest_date"`
	Status            string     `json:"status" db:"status"`
}
