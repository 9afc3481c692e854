package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"spbu-service/internal/models"
	"spbu-service/pkg/common"

	"gorm.io/gorm"
)

var ErrDateRangeRequired = errors.New("rentang tanggal harus diisi")

type ReportFilter struct {
	StartDate      string // YYYY-MM-DD, inclusive
	EndDate        string // YYYY-MM-DD, inclusive
	Plat           string
	JenisKendaraan string
	Operator       string
	Shift          *int
}

type ReportData struct {
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
	Totals       Totals             `json:"totals"`
	Transactions []models.Transaksi `json:"transactions"`
}

type ReportService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewReportService(db *gorm.DB, audit *AuditService) *ReportService {
	return &ReportService{DB: db, Audit: audit}
}

// buildQuery expands the inclusive local-day range to day boundaries and
// applies the optional filters. Reports always re-query the full matching
// set; pagination never applies here.
func (s *ReportService) buildQuery(f ReportFilter) (*gorm.DB, error) {
	if f.StartDate == "" || f.EndDate == "" {
		return nil, ErrDateRangeRequired
	}
	start, err := time.ParseInLocation("2006-01-02", f.StartDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTanggalInvalid, f.StartDate)
	}
	end, err := time.ParseInLocation("2006-01-02", f.EndDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTanggalInvalid, f.EndDate)
	}
	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	query := s.DB.Model(&models.Transaksi{}).
		Where("waktu_pencatatan >= ? AND waktu_pencatatan <= ?", start, end)

	if plat := NormalizePlate(f.Plat); plat != "" {
		query = query.Where("plat_nomor ILIKE ?", "%"+plat+"%")
	}
	if f.JenisKendaraan != "" {
		query = query.Where("jenis_kendaraan = ?", f.JenisKendaraan)
	}
	if f.Operator != "" {
		query = query.Where("operator_email = ?", f.Operator)
	}
	if f.Shift != nil {
		query = query.Where("shift = ?", *f.Shift)
	}
	return query, nil
}

// GenerateReport runs a fresh unpaginated query for the range and computes
// the on-screen totals over the returned set.
func (s *ReportService) GenerateReport(userEmail string, f ReportFilter) (ReportData, error) {
	query, err := s.buildQuery(f)
	if err != nil {
		return ReportData{}, err
	}

	var txs []models.Transaksi
	if err := query.Order("waktu_pencatatan DESC").Find(&txs).Error; err != nil {
		return ReportData{}, err
	}

	report := ReportData{
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Totals:       Aggregate(txs, WindowAllTime, time.Now()).Totals,
		Transactions: txs,
	}

	s.Audit.Log(userEmail, ActionGenerateReport, map[string]interface{}{
		"startDate": f.StartDate,
		"endDate":   f.EndDate,
		"results":   map[string]interface{}{"totalTransaksi": len(txs)},
	})
	return report, nil
}

// ExportCSV serializes the full matching set to comma-separated text with a
// header row. The filename carries the current date.
func (s *ReportService) ExportCSV(userEmail string, f ReportFilter) (string, []byte, error) {
	query, err := s.buildQuery(f)
	if err != nil {
		return "", nil, err
	}

	var txs []models.Transaksi
	if err := query.Order("waktu_pencatatan DESC").Find(&txs).Error; err != nil {
		return "", nil, err
	}

	data, err := MarshalTransaksiCSV(txs)
	if err != nil {
		return "", nil, err
	}

	s.Audit.Log(userEmail, ActionExportCSV, map[string]interface{}{
		"startDate": f.StartDate,
		"endDate":   f.EndDate,
		"plate":     f.Plat,
		"count":     len(txs),
	})

	filename := "laporan_pertalite_" + time.Now().Format("2006-01-02") + ".csv"
	return filename, data, nil
}

// MarshalTransaksiCSV maps rows to the human-labeled export columns.
func MarshalTransaksiCSV(txs []models.Transaksi) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Waktu", "Plat Nomor", "Jenis Kendaraan", "Liter", "Harga", "Shift", "Operator"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range txs {
		jenis := "-"
		if t.JenisKendaraan != nil && *t.JenisKendaraan != "" {
			jenis = *t.JenisKendaraan
		}
		shift := "N/A"
		if t.Shift != nil && *t.Shift != 0 {
			shift = strconv.Itoa(*t.Shift)
		}
		operator := "N/A"
		if t.OperatorEmail != nil && *t.OperatorEmail != "" {
			operator = *t.OperatorEmail
		}

		record := []string{
			t.WaktuPencatatan.Local().Format("02/01/2006 15:04:05"),
			t.PlatNomor,
			jenis,
			strconv.FormatFloat(t.Liter, 'f', 2, 64),
			common.FormatRupiah(t.Harga),
			shift,
			operator,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
