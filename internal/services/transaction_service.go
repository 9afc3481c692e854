package services

import (
	"errors"
	"fmt"
	"time"

	"spbu-service/internal/models"
	"spbu-service/pkg/common"

	"gorm.io/gorm"
)

// HargaPerLiter is the fixed unit price. Price is always computed server-side
// at commit time, never taken from the client.
const HargaPerLiter = 10000.0

var (
	ErrLiterInvalid   = errors.New("jumlah liter harus diisi dengan benar")
	ErrJenisInvalid   = errors.New("jenis kendaraan harus Mobil atau Motor")
	ErrAlreadyFilled  = errors.New("plat nomor sudah mengisi hari ini")
	ErrSortKeyInvalid = errors.New("kolom pengurutan tidak dikenal")
	ErrTanggalInvalid = errors.New("format tanggal tidak valid")
)

// ComputeHarga applies the fixed unit price.
func ComputeHarga(liter float64) float64 {
	return liter * HargaPerLiter
}

// CurrentShift maps a local instant to a work shift. 1: 06-14, 2: 14-22,
// 0 otherwise ("outside shift").
func CurrentShift(t time.Time) int {
	switch h := t.Local().Hour(); {
	case h >= 6 && h < 14:
		return 1
	case h >= 14 && h < 22:
		return 2
	default:
		return 0
	}
}

type RecordTransactionDTO struct {
	PlatNomor      string  // the previously checked plate, not the live field
	Liter          float64
	JenisKendaraan string // required in the operator flow, empty on kiosk rows
	OperatorID     string
	OperatorEmail  string
}

type ListTransactionsDTO struct {
	Plat    string // case-insensitive substring match
	Tanggal string // single local day, YYYY-MM-DD
	SortBy  string
	SortDir string
	Page    int
	Limit   int
}

type TransactionService struct {
	DB          *gorm.DB
	Eligibility *EligibilityService
	Audit       *AuditService
}

func NewTransactionService(db *gorm.DB, eligibility *EligibilityService, audit *AuditService) *TransactionService {
	return &TransactionService{DB: db, Eligibility: eligibility, Audit: audit}
}

// RecordTransaction commits one fill after re-running the same-day check as
// the authoritative gate. The client-side check is only a UX fast path; the
// recorder refuses a denied plate even when invoked directly. The check and
// the insert are still two statements, so a concurrent race can produce two
// same-day rows for one plate.
func (s *TransactionService) RecordTransaction(data RecordTransactionDTO) (models.Transaksi, error) {
	if data.Liter <= 0 {
		return models.Transaksi{}, ErrLiterInvalid
	}
	if data.JenisKendaraan != "" && data.JenisKendaraan != "Mobil" && data.JenisKendaraan != "Motor" {
		return models.Transaksi{}, ErrJenisInvalid
	}

	status, plat, err := s.Eligibility.CheckPlate(data.OperatorEmail, data.PlatNomor)
	if err != nil {
		return models.Transaksi{}, err
	}
	if status == PlateDenied {
		return models.Transaksi{}, fmt.Errorf("%w: %s", ErrAlreadyFilled, plat)
	}

	now := time.Now()
	shift := CurrentShift(now)
	trx := models.Transaksi{
		PlatNomor:       plat,
		Liter:           data.Liter,
		Harga:           ComputeHarga(data.Liter),
		Shift:           &shift,
		WaktuPencatatan: now,
	}
	if data.JenisKendaraan != "" {
		trx.JenisKendaraan = &data.JenisKendaraan
	}
	if data.OperatorID != "" {
		trx.OperatorID = &data.OperatorID
	}
	if data.OperatorEmail != "" {
		trx.OperatorEmail = &data.OperatorEmail
	}

	if err := s.DB.Create(&trx).Error; err != nil {
		s.Audit.Log(data.OperatorEmail, ActionInsertFailed, map[string]interface{}{
			"plate": plat,
			"error": err.Error(),
		})
		return models.Transaksi{}, err
	}

	s.Audit.Log(data.OperatorEmail, ActionCreateTransaction, map[string]interface{}{
		"transactionId": trx.ID.String(),
		"plate":         plat,
		"liters":        data.Liter,
		"vehicle":       data.JenisKendaraan,
	})
	return trx, nil
}

// Sortable riwayat columns.
var sortColumns = map[string]bool{
	"waktu_pencatatan": true,
	"plat_nomor":       true,
	"liter":            true,
	"harga":            true,
}

// ListTransactions serves the riwayat screen: optional plate/date filters,
// single-column ordering and offset pagination.
func (s *TransactionService) ListTransactions(data ListTransactionsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 20
	}
	page := data.Page
	if page < 1 {
		page = 1
	}

	sortBy := data.SortBy
	if sortBy == "" {
		sortBy = "waktu_pencatatan"
	}
	if !sortColumns[sortBy] {
		return common.PaginationResult{}, ErrSortKeyInvalid
	}
	dir := "DESC"
	if data.SortDir == "asc" {
		dir = "ASC"
	}

	query := s.DB.Model(&models.Transaksi{})
	if plat := NormalizePlate(data.Plat); plat != "" {
		query = query.Where("plat_nomor ILIKE ?", "%"+plat+"%")
	}
	if data.Tanggal != "" {
		day, err := time.ParseInLocation("2006-01-02", data.Tanggal, time.Local)
		if err != nil {
			return common.PaginationResult{}, fmt.Errorf("%w: %s", ErrTanggalInvalid, data.Tanggal)
		}
		query = query.Where("waktu_pencatatan >= ? AND waktu_pencatatan <= ?",
			day, day.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var results []models.Transaksi
	err := query.Order(sortBy + " " + dir).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&results).Error
	if err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(results, total, page, limit, ""), nil
}

// TodayTransactions serves the operator's same-day history: today window,
// optional plate filter, newest first.
func (s *TransactionService) TodayTransactions(plat string, page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 15
	}
	if page < 1 {
		page = 1
	}

	query := s.DB.Model(&models.Transaksi{}).
		Where("waktu_pencatatan >= ?", StartOfDay(time.Now()))
	if p := NormalizePlate(plat); p != "" {
		query = query.Where("plat_nomor ILIKE ?", "%"+p+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var results []models.Transaksi
	err := query.Order("waktu_pencatatan DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&results).Error
	if err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(results, total, page, limit, ""), nil
}
