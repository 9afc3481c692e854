package services

import (
	"testing"
	"time"

	"spbu-service/internal/models"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func trx(plat string, liter float64, at time.Time) models.Transaksi {
	return models.Transaksi{
		PlatNomor:       plat,
		Liter:           liter,
		Harga:           liter * HargaPerLiter,
		WaktuPencatatan: at,
	}
}

func TestAggregateTotals(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)
	txs := []models.Transaksi{
		{PlatNomor: "KT 1234 ABC", Liter: 10, Harga: 100000, WaktuPencatatan: now},
		{PlatNomor: "KT 5678 DEF", Liter: 5, Harga: 50000, WaktuPencatatan: now},
	}

	s := Aggregate(txs, WindowToday, now)
	require.Equal(t, 2, s.Totals.TotalTransaksi)
	require.Equal(t, 15.0, s.Totals.TotalLiter)
	require.Equal(t, 150000.0, s.Totals.TotalHarga)
	require.Equal(t, 7.5, s.Totals.AvgLiter)
}

func TestAggregateEmpty(t *testing.T) {
	now := time.Now()
	s := Aggregate(nil, WindowAllTime, now)
	require.Equal(t, 0, s.Totals.TotalTransaksi)
	require.Equal(t, 0.0, s.Totals.AvgLiter)
	require.Equal(t, "N/A", s.PlatTerbanyak)
	require.Empty(t, s.TopOperator)
	require.Empty(t, s.TopPelanggan)
}

func TestAggregateIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	txs := []models.Transaksi{
		trx("KT 1 A", 10, now),
		trx("KT 2 B", 20, now.Add(-time.Hour)),
		trx("KT 1 A", 5, now.Add(-2*time.Hour)),
	}

	first := Aggregate(txs, WindowToday, now)
	second := Aggregate(txs, WindowToday, now)
	require.Equal(t, first, second)
}

func TestModePlateTieBreak(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

	// Equal counts: the plate encountered first in the scan wins.
	txs := []models.Transaksi{
		trx("KT 2 B", 1, now),
		trx("KT 1 A", 1, now),
		trx("KT 1 A", 1, now),
		trx("KT 2 B", 1, now),
	}
	s := Aggregate(txs, WindowToday, now)
	require.Equal(t, "KT 2 B", s.PlatTerbanyak)

	// A strictly higher count always wins.
	txs = append(txs, trx("KT 1 A", 1, now))
	s = Aggregate(txs, WindowToday, now)
	require.Equal(t, "KT 1 A", s.PlatTerbanyak)
}

func TestVehicleDistributionUnknownBucket(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	mobil := trx("KT 1 A", 1, now)
	mobil.JenisKendaraan = strPtr("Mobil")
	blank := trx("KT 2 B", 1, now)
	blank.JenisKendaraan = strPtr("")
	legacy := trx("KT 3 C", 1, now)

	s := Aggregate([]models.Transaksi{mobil, blank, legacy}, WindowToday, now)
	require.Equal(t, []DistEntry{
		{Label: "Mobil", Count: 1},
		{Label: "unknown", Count: 2},
	}, s.JenisKendaraan)
}

func TestShiftDistributionLabels(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	shift1 := trx("KT 1 A", 1, now)
	shift1.Shift = intPtr(1)
	outside := trx("KT 2 B", 1, now)
	outside.Shift = intPtr(0)
	legacy := trx("KT 3 C", 1, now)

	s := Aggregate([]models.Transaksi{shift1, outside, legacy, shift1}, WindowToday, now)
	require.Equal(t, []DistEntry{
		{Label: "Shift 1", Count: 2},
		{Label: "Shift 0", Count: 1},
		{Label: "Shift N/A", Count: 1},
	}, s.Shift)
}

func TestOperatorLeaderboard(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	mk := func(op string, liter float64) models.Transaksi {
		tx := trx("KT 1 A", liter, now)
		if op != "" {
			tx.OperatorEmail = strPtr(op)
		}
		return tx
	}

	// Two rows for a: 20 + 10 = 30, above b's 5.
	s := Aggregate([]models.Transaksi{mk("a", 20), mk("b", 5), mk("a", 10)}, WindowToday, now)
	require.Equal(t, []LeaderboardEntry{
		{Key: "a", Value: 30},
		{Key: "b", Value: 5},
	}, s.TopOperator)

	// Anonymous rows collapse into the unknown sentinel.
	s = Aggregate([]models.Transaksi{mk("", 7), mk("", 3)}, WindowToday, now)
	require.Equal(t, []LeaderboardEntry{{Key: "unknown", Value: 10}}, s.TopOperator)
}

func TestPlateLeaderboardTopFive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	var txs []models.Transaksi
	plates := []string{"KT 1 A", "KT 2 B", "KT 3 C", "KT 4 D", "KT 5 E", "KT 6 F"}
	for i, p := range plates {
		for j := 0; j <= i; j++ {
			txs = append(txs, trx(p, 1, now))
		}
	}

	s := Aggregate(txs, WindowToday, now)
	require.Len(t, s.TopPelanggan, 5)
	require.Equal(t, LeaderboardEntry{Key: "KT 6 F", Value: 6}, s.TopPelanggan[0])
	require.Equal(t, LeaderboardEntry{Key: "KT 2 B", Value: 2}, s.TopPelanggan[4])
}

func TestWindowTodayMidnightInclusive(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	midnight := StartOfDay(now)

	atMidnight := trx("KT 1 A", 1, midnight)
	justBefore := trx("KT 2 B", 1, midnight.Add(-time.Nanosecond))

	got := FilterWindow([]models.Transaksi{atMidnight, justBefore}, WindowToday, now)
	require.Len(t, got, 1)
	require.Equal(t, "KT 1 A", got[0].PlatNomor)
}

func TestWindowRollingVsMidnightSnap(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)

	// Yesterday evening: outside today, inside the rolling 7-day window.
	yesterdayEvening := trx("KT 1 A", 1, now.Add(-12*time.Hour))
	// Just outside 7x24h.
	tooOld := trx("KT 2 B", 1, now.Add(-7*24*time.Hour-time.Minute))

	txs := []models.Transaksi{yesterdayEvening, tooOld}
	require.Empty(t, FilterWindow(txs, WindowToday, now))

	got := FilterWindow(txs, WindowLast7Days, now)
	require.Len(t, got, 1)
	require.Equal(t, "KT 1 A", got[0].PlatNomor)

	require.Len(t, FilterWindow(txs, WindowLast30Days, now), 2)
	require.Len(t, FilterWindow(txs, WindowAllTime, now), 2)
}

func TestHourlyHistogram(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)
	midnight := StartOfDay(now)

	txs := []models.Transaksi{
		trx("KT 1 A", 1, midnight),                    // hour 0, inclusive boundary
		trx("KT 2 B", 1, midnight.Add(13*time.Hour)),  // hour 13
		trx("KT 3 C", 1, midnight.Add(13*time.Hour)),  // hour 13
		trx("KT 4 D", 1, midnight.Add(-2*time.Hour)),  // yesterday, dropped
	}

	h := HourlyHistogram(txs, now)
	require.Len(t, h.Labels, 24)
	require.Equal(t, "0:00", h.Labels[0])
	require.Equal(t, "23:00", h.Labels[23])
	require.Equal(t, 1, h.Counts[0])
	require.Equal(t, 2, h.Counts[13])

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	require.Equal(t, 3, total)
}

func TestWeekdayHistogram(t *testing.T) {
	// A Sunday, so the label row runs Sen..Min.
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)

	txs := []models.Transaksi{
		trx("KT 1 A", 1, now),                             // 0 days ago -> last bucket
		trx("KT 2 B", 1, StartOfDay(now)),                 // still 0 days ago
		trx("KT 3 C", 1, now.Add(-24*time.Hour)),          // 1 day ago
		trx("KT 4 D", 1, now.Add(-6*24*time.Hour)),        // 6 days ago -> first bucket
		trx("KT 5 E", 1, now.Add(-7*24*time.Hour)),        // exactly 7 days, dropped
	}

	h := WeekdayHistogram(txs, now)
	require.Len(t, h.Labels, 7)
	require.Equal(t, "Min", h.Labels[6]) // today
	require.Equal(t, "Sen", h.Labels[0]) // six days back

	require.Equal(t, 2, h.Counts[6])
	require.Equal(t, 1, h.Counts[5])
	require.Equal(t, 1, h.Counts[0])

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	require.Equal(t, 4, total)
}

func TestParseWindow(t *testing.T) {
	require.Equal(t, WindowToday, ParseWindow("today"))
	require.Equal(t, WindowToday, ParseWindow(""))
	require.Equal(t, WindowToday, ParseWindow("bogus"))
	require.Equal(t, WindowLast7Days, ParseWindow("weekly"))
	require.Equal(t, WindowLast7Days, ParseWindow("7days"))
	require.Equal(t, WindowLast30Days, ParseWindow("30days"))
	require.Equal(t, WindowAllTime, ParseWindow("all"))
}
