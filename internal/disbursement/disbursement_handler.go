package disbursement

import (
	"net/http"
	"time"

	"zestpay/internal/shared/apperror"
	"zestpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DisbursementResponse struct {
	ID           string    `json:"id"`
	WithdrawalID string    `json:"withdrawal_id"`
	Reference    string    `json:"reference"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	ProcessedAt  time.Time `json:"processed_at"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("disbursement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("disbursement.handler")
	}
	return &Handler{service: service, logger: l}
}

// GetMine menampilkan riwayat pencairan karyawan yang sedang login.
func (h *Handler) GetMine(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	list, err := h.service.GetAllByEmployee(c.Request.Context(), companyID, employeeID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	res := make([]DisbursementResponse, len(list))
	for i, d := range list {
		res[i] = DisbursementResponse{
			ID:           d.ID.String(),
			WithdrawalID: d.WithdrawalID.String(),
			Reference:    d.Reference,
			Amount:       int64(d.Amount),
			Status:       d.Status,
			ProcessedAt:  d.ProcessedAt,
		}
	}

	response.Success(c, http.StatusOK, res, nil)
}
