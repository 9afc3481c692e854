package services

import (
	"fmt"
	"time"

	"spbu-service/internal/models"
)

// Window selects the time range a dashboard view aggregates over. Today snaps
// to local midnight; the 7/30 day windows are rolling N*24h windows and do
// not snap. The two policies are deliberately distinct.
type Window string

const (
	WindowToday      Window = "today"
	WindowLast7Days  Window = "7days"
	WindowLast30Days Window = "30days"
	WindowAllTime    Window = "all"
)

type Totals struct {
	TotalTransaksi int     `json:"totalTransaksi"`
	TotalLiter     float64 `json:"totalLiter"`
	TotalHarga     float64 `json:"totalHarga"`
	AvgLiter       float64 `json:"avgLiter"`
}

type DistEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type LeaderboardEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type Summary struct {
	Totals         Totals             `json:"totals"`
	PlatTerbanyak  string             `json:"platTerbanyak"`
	JenisKendaraan []DistEntry        `json:"jenisKendaraan"`
	Shift          []DistEntry        `json:"shift"`
	TopOperator    []LeaderboardEntry `json:"topOperator"`
	TopPelanggan   []LeaderboardEntry `json:"topPelanggan"`
}

type Histogram struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Indonesian short day names, Sunday first to match time.Weekday.
var hariPendek = [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

const topN = 5

// StartOfDay returns local midnight for the given instant.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowStart returns the inclusive lower bound of a window. The second
// return is false for the all-time window, which has no bound.
func WindowStart(w Window, now time.Time) (time.Time, bool) {
	switch w {
	case WindowToday:
		return StartOfDay(now), true
	case WindowLast7Days:
		return now.Add(-7 * 24 * time.Hour), true
	case WindowLast30Days:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// FilterWindow keeps the transactions recorded at or after the window start.
func FilterWindow(txs []models.Transaksi, w Window, now time.Time) []models.Transaksi {
	start, bounded := WindowStart(w, now)
	if !bounded {
		return txs
	}
	out := make([]models.Transaksi, 0, len(txs))
	for _, t := range txs {
		if !t.WaktuPencatatan.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// Aggregate computes the dashboard summary for one window. It is a pure
// function over the input slice: same input, same output.
func Aggregate(txs []models.Transaksi, w Window, now time.Time) Summary {
	inWindow := FilterWindow(txs, w, now)

	var s Summary
	s.Totals.TotalTransaksi = len(inWindow)
	for _, t := range inWindow {
		s.Totals.TotalLiter += t.Liter
		s.Totals.TotalHarga += t.Harga
	}
	if len(inWindow) > 0 {
		s.Totals.AvgLiter = s.Totals.TotalLiter / float64(len(inWindow))
	}

	s.PlatTerbanyak = modePlate(inWindow)
	s.JenisKendaraan = vehicleDistribution(inWindow)
	s.Shift = shiftDistribution(inWindow)
	s.TopOperator = topOperators(inWindow)
	s.TopPelanggan = topPlates(inWindow)
	return s
}

// modePlate returns the most frequent plate. Ties go to whichever plate was
// encountered first in the scan, not alphabetical or chronological order.
func modePlate(txs []models.Transaksi) string {
	if len(txs) == 0 {
		return "N/A"
	}
	counts := map[string]int{}
	var order []string
	for _, t := range txs {
		if _, seen := counts[t.PlatNomor]; !seen {
			order = append(order, t.PlatNomor)
		}
		counts[t.PlatNomor]++
	}
	best := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return best
}

func vehicleDistribution(txs []models.Transaksi) []DistEntry {
	return distribution(txs, func(t models.Transaksi) string {
		if t.JenisKendaraan == nil || *t.JenisKendaraan == "" {
			return "unknown"
		}
		return *t.JenisKendaraan
	})
}

func shiftDistribution(txs []models.Transaksi) []DistEntry {
	return distribution(txs, func(t models.Transaksi) string {
		if t.Shift == nil {
			return "Shift N/A"
		}
		return fmt.Sprintf("Shift %d", *t.Shift)
	})
}

// distribution groups by label in first-encountered order.
func distribution(txs []models.Transaksi, label func(models.Transaksi) string) []DistEntry {
	counts := map[string]int{}
	var order []string
	for _, t := range txs {
		l := label(t)
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}
	out := make([]DistEntry, 0, len(order))
	for _, l := range order {
		out = append(out, DistEntry{Label: l, Count: counts[l]})
	}
	return out
}

// topOperators ranks operators by total liters dispensed, descending. Rows
// without an operator fall into the "unknown" sentinel.
func topOperators(txs []models.Transaksi) []LeaderboardEntry {
	return leaderboard(txs, func(t models.Transaksi) (string, float64) {
		key := "unknown"
		if t.OperatorEmail != nil && *t.OperatorEmail != "" {
			key = *t.OperatorEmail
		}
		return key, t.Liter
	})
}

// topPlates ranks plates by fill count, descending.
func topPlates(txs []models.Transaksi) []LeaderboardEntry {
	return leaderboard(txs, func(t models.Transaksi) (string, float64) {
		return t.PlatNomor, 1
	})
}

// leaderboard sums a metric per key and returns the top 5 descending. Equal
// totals keep first-encountered order (stable).
func leaderboard(txs []models.Transaksi, metric func(models.Transaksi) (string, float64)) []LeaderboardEntry {
	sums := map[string]float64{}
	var order []string
	for _, t := range txs {
		key, v := metric(t)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += v
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, LeaderboardEntry{Key: k, Value: sums[k]})
	}
	// insertion sort keeps ties stable
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Value > entries[j-1].Value; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// HourlyHistogram buckets today's transactions by local hour of day.
func HourlyHistogram(txs []models.Transaksi, now time.Time) Histogram {
	h := Histogram{
		Labels: make([]string, 24),
		Counts: make([]int, 24),
	}
	for i := 0; i < 24; i++ {
		h.Labels[i] = fmt.Sprintf("%d:00", i)
	}
	start := StartOfDay(now)
	for _, t := range txs {
		if t.WaktuPencatatan.Before(start) {
			continue
		}
		h.Counts[t.WaktuPencatatan.Local().Hour()]++
	}
	return h
}

// WeekdayHistogram buckets the trailing 7 days oldest to newest. The day
// index uses truncated whole-day differences from now, so a transaction just
// past the 7x24h cutoff silently drops out of the chart.
func WeekdayHistogram(txs []models.Transaksi, now time.Time) Histogram {
	h := Histogram{
		Labels: make([]string, 7),
		Counts: make([]int, 7),
	}
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		h.Labels[6-i] = hariPendek[int(d.Weekday())]
	}
	for _, t := range txs {
		diffDays := int(now.Sub(t.WaktuPencatatan).Hours() / 24)
		if diffDays >= 0 && diffDays < 7 {
			h.Counts[6-diffDays]++
		}
	}
	return h
}
