package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"zestpay/internal/disbursement"
	"zestpay/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeWithdrawalApproved mencairkan dana untuk setiap withdrawal yang
// disetujui (termasuk instant withdrawal gig worker, yang memakai topik
// yang sama). Duplikat event di-skip lewat unique index withdrawal_id.
func ConsumeWithdrawalApproved(
	ctx context.Context,
	reader *kafkago.Reader,
	disbursementService disbursement.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.withdrawal_approved")
	log.Info("withdrawal approved consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("withdrawal approved consumer stopped")
				return
			}
			log.Error("fetch withdrawal approved message failed", zap.Error(err))
			continue
		}

		var event events.WithdrawalApprovedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode withdrawal approved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = disbursementService.CreateFromEvent(ctx, event)
		if err != nil {
			if isUniqueDisbursementViolation(err) {
				log.Warn("disbursement already exists for event, skipping",
					zap.String("withdrawal_id", event.WithdrawalID),
					zap.String("company_id", event.CompanyID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create disbursement failed",
				zap.String("withdrawal_id", event.WithdrawalID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit withdrawal approved message failed", zap.Error(err))
			continue
		}

		log.Info("disbursement created from withdrawal approved event",
			zap.String("withdrawal_id", event.WithdrawalID),
			zap.String("reference", event.Reference),
		)
	}
}

func isUniqueDisbursementViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_disbursements_withdrawal"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_disbursements_withdrawal")
}
