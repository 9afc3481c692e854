package services

import (
	"time"

	"spbu-service/internal/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type DashboardData struct {
	View    Window             `json:"view"`
	Summary Summary            `json:"summary"`
	Chart   *Histogram         `json:"chart,omitempty"`
	Recent  []models.Transaksi `json:"recent"`
}

// ParseWindow maps a view query parameter to a window, defaulting to today.
func ParseWindow(view string) Window {
	switch view {
	case "weekly", string(WindowLast7Days):
		return WindowLast7Days
	case string(WindowLast30Days):
		return WindowLast30Days
	case string(WindowAllTime):
		return WindowAllTime
	default:
		return WindowToday
	}
}

// GetDashboard fetches the window's rows once and aggregates them
// client-side; the store does no aggregation. The hourly chart exists only
// for the today view, the weekday chart only for the 7-day view.
func (s *DashboardService) GetDashboard(view string) (DashboardData, error) {
	w := ParseWindow(view)
	now := time.Now()

	query := s.DB.Model(&models.Transaksi{})
	if start, bounded := WindowStart(w, now); bounded {
		query = query.Where("waktu_pencatatan >= ?", start)
	}

	var txs []models.Transaksi
	if err := query.Order("waktu_pencatatan DESC").Find(&txs).Error; err != nil {
		return DashboardData{}, err
	}

	data := DashboardData{
		View:    w,
		Summary: Aggregate(txs, w, now),
	}

	switch w {
	case WindowToday:
		chart := HourlyHistogram(txs, now)
		data.Chart = &chart
	case WindowLast7Days:
		chart := WeekdayHistogram(txs, now)
		data.Chart = &chart
	}

	recent := txs
	if len(recent) > 5 {
		recent = recent[:5]
	}
	data.Recent = recent

	return data, nil
}
