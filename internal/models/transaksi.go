package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaksi is one fuel dispensing event. Rows are created exactly once and
// never updated or deleted; WaktuPencatatan is the only ordering key.
type Transaksi struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlatNomor       string    `gorm:"column:plat_nomor;size:20;not null;index" json:"plat_nomor"`
	Liter           float64   `gorm:"column:liter;type:decimal(10,2);not null" json:"liter"`
	Harga           float64   `gorm:"column:harga;type:decimal(14,2);not null" json:"harga"`
	JenisKendaraan  *string   `gorm:"column:jenis_kendaraan;size:20" json:"jenis_kendaraan"` // Mobil/Motor, nil on legacy and kiosk rows
	Shift           *int      `gorm:"column:shift" json:"shift"`                             // 1 or 2; 0/nil means outside shift
	OperatorID      *string   `gorm:"column:operator_id;size:64" json:"operator_id"`
	OperatorEmail   *string   `gorm:"column:operator_email;size:255" json:"operator_email"`
	WaktuPencatatan time.Time `gorm:"column:waktu_pencatatan;autoCreateTime;index" json:"waktu_pencatatan"`
}

func (Transaksi) TableName() string {
	return "transaksi_pertalite"
}

func (t *Transaksi) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
