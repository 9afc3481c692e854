package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"spbu-service/internal/models"

	"gorm.io/gorm"
)

// PlateStatus is the outcome of a same-day eligibility check.
type PlateStatus string

const (
	PlateAllowed PlateStatus = "allowed"
	PlateDenied  PlateStatus = "denied"
)

var (
	ErrPlateRequired = errors.New("plat nomor harus diisi")
	ErrPlateFormat   = errors.New("format plat nomor tidak valid. Contoh: KT 1234 ABC")
)

// One or two letters, one to four digits, one to three letters, space separated.
var platRegex = regexp.MustCompile(`^[A-Z]{1,2} [0-9]{1,4} [A-Z]{1,3}$`)

// NormalizePlate uppercases and trims raw plate input.
func NormalizePlate(plat string) string {
	return strings.ToUpper(strings.TrimSpace(plat))
}

// ValidatePlate normalizes and validates a plate string. It rejects before
// any store query is issued.
func ValidatePlate(plat string) (string, error) {
	normalized := NormalizePlate(plat)
	if normalized == "" {
		return "", ErrPlateRequired
	}
	if !platRegex.MatchString(normalized) {
		return "", ErrPlateFormat
	}
	return normalized, nil
}

type EligibilityService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewEligibilityService(db *gorm.DB, audit *AuditService) *EligibilityService {
	return &EligibilityService{DB: db, Audit: audit}
}

// CheckPlate decides whether a plate may record a new fill today. The rule is
// one fill per plate per calendar day, counted from local midnight inclusive.
// A denial audits CHECK_PLATE_FAILED. There is no atomicity between this read
// and a later insert: two concurrent checks for the same new plate can both
// come back allowed.
func (s *EligibilityService) CheckPlate(userEmail, plat string) (PlateStatus, string, error) {
	normalized, err := ValidatePlate(plat)
	if err != nil {
		return "", "", err
	}

	var count int64
	err = s.DB.Model(&models.Transaksi{}).
		Where("plat_nomor = ? AND waktu_pencatatan >= ?", normalized, StartOfDay(time.Now())).
		Count(&count).Error
	if err != nil {
		return "", normalized, err
	}

	if count > 0 {
		s.Audit.Log(userEmail, ActionCheckPlateFailed, map[string]interface{}{
			"plate":  normalized,
			"reason": "Already filled today",
		})
		return PlateDenied, normalized, nil
	}
	return PlateAllowed, normalized, nil
}
