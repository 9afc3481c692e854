package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spbu-service/internal/services"
	"spbu-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

func reportFilterFromQuery(c *gin.Context) services.ReportFilter {
	f := services.ReportFilter{
		StartDate:      c.Query("start"),
		EndDate:        c.Query("end"),
		Plat:           c.Query("plat_nomor"),
		JenisKendaraan: c.Query("jenis_kendaraan"),
		Operator:       c.Query("operator"),
	}
	if v := c.Query("shift"); v != "" {
		if shift, err := strconv.Atoi(v); err == nil {
			f.Shift = &shift
		}
	}
	return f
}

func isReportValidationError(err error) bool {
	return errors.Is(err, services.ErrDateRangeRequired) || errors.Is(err, services.ErrTanggalInvalid)
}

// Generate builds the on-screen report for an inclusive date range.
func (h *ReportHandler) Generate(c *gin.Context) {
	report, err := h.Reports.GenerateReport(c.GetString("user_email"), reportFilterFromQuery(c))
	if err != nil {
		if isReportValidationError(err) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Gagal mengambil data: "+err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(report, "Laporan berhasil dibuat!"))
}

// ExportCSV streams the full matching set as a CSV attachment.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filename, data, err := h.Reports.ExportCSV(c.GetString("user_email"), reportFilterFromQuery(c))
	if err != nil {
		if isReportValidationError(err) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Gagal mengekspor data: "+err.Error(), nil, http.StatusInternalServerError))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
