package services

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"spbu-service/internal/models"
)

func TestMarshalTransaksiCSV(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 9, 0, time.Local)
	shift := 1
	operator := "operator@spbu.com"
	jenis := "Motor"

	txs := []models.Transaksi{
		{
			PlatNomor:       "KT 1234 ABC",
			Liter:           15.5,
			Harga:           155000,
			JenisKendaraan:  &jenis,
			Shift:           &shift,
			OperatorEmail:   &operator,
			WaktuPencatatan: at,
		},
		{
			// Legacy kiosk row: no vehicle type, shift or operator.
			PlatNomor:       "B 1 A",
			Liter:           10,
			Harga:           100000,
			WaktuPencatatan: at.Add(-time.Hour),
		},
	}

	data, err := MarshalTransaksiCSV(txs)
	if err != nil {
		t.Fatalf("MarshalTransaksiCSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}

	wantHeader := []string{"Waktu", "Plat Nomor", "Jenis Kendaraan", "Liter", "Harga", "Shift", "Operator"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, want %v", records[0], wantHeader)
	}

	wantFirst := []string{"30/08/2026 14:05:09", "KT 1234 ABC", "Motor", "15.50", "Rp 155.000", "1", "operator@spbu.com"}
	if !reflect.DeepEqual(records[1], wantFirst) {
		t.Errorf("row 1 = %v, want %v", records[1], wantFirst)
	}

	wantSecond := []string{"30/08/2026 13:05:09", "B 1 A", "-", "10.00", "Rp 100.000", "N/A", "N/A"}
	if !reflect.DeepEqual(records[2], wantSecond) {
		t.Errorf("row 2 = %v, want %v", records[2], wantSecond)
	}
}

func TestMarshalTransaksiCSVEmpty(t *testing.T) {
	data, err := MarshalTransaksiCSV(nil)
	if err != nil {
		t.Fatalf("MarshalTransaksiCSV failed: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected header only, got %d records", len(records))
	}
}

func TestReportFilterRequiresRange(t *testing.T) {
	s := NewReportService(nil, NewAuditService(nil))

	if _, err := s.buildQuery(ReportFilter{}); err == nil {
		t.Error("Expected error for missing date range")
	}
	if _, err := s.buildQuery(ReportFilter{StartDate: "2026-08-30"}); err == nil {
		t.Error("Expected error for missing end date")
	}
	if _, err := s.buildQuery(ReportFilter{StartDate: "30-08-2026", EndDate: "2026-08-30"}); err == nil {
		t.Error("Expected error for malformed start date")
	}
}
