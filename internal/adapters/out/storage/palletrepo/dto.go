// Package palletrepo provides GORM persistence for the pallet aggregate and its boxes.
// It maps domain entities to the pallets and boxes tables and rebuilds object graphs
// in which every placed box points back to the pallet that carries it.
package palletrepo

import (
	"database/sql/driver"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// PalletDTO represents the database structure for persisting pallets.
// Boxes are loaded through the has-many association; deleting a pallet that still
// carries boxes is restricted by the foreign key.
type PalletDTO struct {
	ID     uint64   `gorm:"primaryKey;autoIncrement"`
	Width  uint32   `gorm:"not null"`
	Height uint32   `gorm:"not null"`
	Depth  uint32   `gorm:"not null"`
	Boxes  []BoxDTO `gorm:"foreignKey:PalletID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// TableName specifies the database table name for pallets.
// Overrides GORM's default naming convention to use "pallets" instead of "pallet_dtos".
func (PalletDTO) TableName() string {
	return "pallets"
}

// BoxDTO represents the database structure for persisting boxes.
// PalletID is NULL for boxes that stand on no pallet.
type BoxDTO struct {
	ID             uint64   `gorm:"primaryKey;autoIncrement"`
	Width          uint32   `gorm:"not null"`
	Height         uint32   `gorm:"not null"`
	Depth          uint32   `gorm:"not null"`
	Weight         uint32   `gorm:"not null"`
	ProductionDate *sqlDate `gorm:"type:date"`
	ExpireDate     sqlDate  `gorm:"type:date;not null"`
	PalletID       *uint64  `gorm:"index"`
}

// TableName specifies the database table name for boxes.
// Overrides GORM's default naming convention to use "boxes" instead of "box_dtos".
func (BoxDTO) TableName() string {
	return "boxes"
}

// sqlDate stores a kernel.Date in a SQL DATE column.
// Drivers disagree on how DATE comes back: pgx returns time.Time, sqlite may return
// time.Time or text depending on how the value was written.
type sqlDate kernel.Date

// Value implements driver.Valuer. The date is written as UTC midnight.
func (d sqlDate) Value() (driver.Value, error) {
	date := kernel.Date(d)
	if err := date.Validate(); err != nil {
		return nil, err
	}
	return date.Time(), nil
}

// Scan implements sql.Scanner.
func (d *sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = sqlDate(kernel.DateOf(v))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into date", src)
	}
}

func (d *sqlDate) parse(value string) error {
	if len(value) > len(time.DateOnly) {
		value = value[:len(time.DateOnly)]
	}
	date, err := kernel.ParseDate(value)
	if err != nil {
		return err
	}
	*d = sqlDate(date)
	return nil
}

// palletFromDomain converts a pallet to its row. Boxes are persisted separately,
// so the association is left empty.
func palletFromDomain(aggregate *pallet.Pallet) PalletDTO {
	return PalletDTO{
		ID:     uint64(aggregate.ID()),
		Width:  aggregate.Width(),
		Height: aggregate.Height(),
		Depth:  aggregate.Depth(),
	}
}

// boxFromDomain converts a box to its row, including its pallet membership.
func boxFromDomain(box *pallet.Box) BoxDTO {
	dto := BoxDTO{
		ID:         uint64(box.ID()),
		Width:      box.Width(),
		Height:     box.Height(),
		Depth:      box.Depth(),
		Weight:     uint32(box.Weight()),
		ExpireDate: sqlDate(box.ExpireDate()),
	}

	if production := box.ProductionDate(); production != nil {
		value := sqlDate(*production)
		dto.ProductionDate = &value
	}

	if palletID := box.PalletID(); palletID != nil {
		value := uint64(*palletID)
		dto.PalletID = &value
	}

	return dto
}

// boxToDomain restores a detached box from its row. The owning pallet attaches it.
func boxToDomain(dto BoxDTO) (*pallet.Box, error) {
	var production *kernel.Date
	if dto.ProductionDate != nil {
		value := kernel.Date(*dto.ProductionDate)
		production = &value
	}

	return pallet.RestoreBox(
		kernel.ID(dto.ID),
		dto.Width, dto.Height, dto.Depth, dto.Weight,
		production,
		kernel.Date(dto.ExpireDate),
	)
}
