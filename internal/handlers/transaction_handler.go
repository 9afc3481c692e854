package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spbu-service/internal/services"
	"spbu-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
	Eligibility  *services.EligibilityService
}

func NewTransactionHandler(transactions *services.TransactionService, eligibility *services.EligibilityService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Eligibility: eligibility}
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrPlateRequired) ||
		errors.Is(err, services.ErrPlateFormat) ||
		errors.Is(err, services.ErrLiterInvalid) ||
		errors.Is(err, services.ErrJenisInvalid)
}

// CheckPlate answers the operator's "Cek" button: allowed or denied for a new
// fill today. The normalized plate is echoed back so the client can submit
// exactly what was checked.
func (h *TransactionHandler) CheckPlate(c *gin.Context) {
	status, plat, err := h.Eligibility.CheckPlate(c.GetString("user_email"), c.Query("plat_nomor"))
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Gagal memeriksa data: "+err.Error(), nil, http.StatusInternalServerError))
		return
	}

	message := "Plat " + plat + " boleh mengisi."
	if status == services.PlateDenied {
		message = "Plat " + plat + " sudah mengisi hari ini."
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"status":     status,
		"plat_nomor": plat,
	}, message))
}

type CreateTransactionRequest struct {
	PlatNomor      string  `json:"plat_nomor" binding:"required"`
	Liter          float64 `json:"liter" binding:"required"`
	JenisKendaraan string  `json:"jenis_kendaraan"`
}

// Create records a kiosk fill: anonymous, no vehicle type selection.
func (h *TransactionHandler) Create(c *gin.Context) {
	h.record(c, false)
}

// CreateOperator records an operator fill; vehicle type is mandatory and the
// row carries the operator's identity.
func (h *TransactionHandler) CreateOperator(c *gin.Context) {
	h.record(c, true)
}

func (h *TransactionHandler) record(c *gin.Context, operatorFlow bool) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Plat nomor dan liter harus diisi dengan benar.", nil, http.StatusBadRequest))
		return
	}

	data := services.RecordTransactionDTO{
		PlatNomor: req.PlatNomor,
		Liter:     req.Liter,
	}
	if operatorFlow {
		if req.JenisKendaraan == "" {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(services.ErrJenisInvalid.Error(), nil, http.StatusBadRequest))
			return
		}
		data.JenisKendaraan = req.JenisKendaraan
		data.OperatorID = c.GetString("user_id")
		data.OperatorEmail = c.GetString("user_email")
	}

	trx, err := h.Transactions.RecordTransaction(data)
	if err != nil {
		switch {
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		case errors.Is(err, services.ErrAlreadyFilled):
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error(), nil, http.StatusConflict))
		default:
			c.JSON(http.StatusInternalServerError,
				common.NewErrorResponse("Gagal menyimpan data: "+err.Error(), nil, http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "Data berhasil disimpan!"))
}

// List serves the riwayat screen with filters, sorting and pagination.
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.Transactions.ListTransactions(services.ListTransactionsDTO{
		Plat:    c.Query("plat_nomor"),
		Tanggal: c.Query("tanggal"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		if errors.Is(err, services.ErrSortKeyInvalid) || errors.Is(err, services.ErrTanggalInvalid) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Gagal memuat data: "+err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}

// TodayList serves the operator's same-day history.
func (h *TransactionHandler) TodayList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	result, err := h.Transactions.TodayTransactions(c.Query("plat_nomor"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Gagal mengambil data riwayat: "+err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}
