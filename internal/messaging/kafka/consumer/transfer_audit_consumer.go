package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeTransfers writes an audit trail entry for every committed
// bulk reassignment. The transfer itself is already durable when the event
// arrives; a malformed message is committed and skipped so the group never
// wedges on a poison record.
func ConsumeEmployeeTransfers(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_transfer")
	log.Info("employee transfer consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee transfer consumer stopped")
				return
			}
			log.Error("fetch employee transfer message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeTransferredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employees_transferred event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		target := "unassigned"
		if event.TargetDepartmentID != nil {
			target = *event.TargetDepartmentID
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "EMPLOYEES_TRANSFERRED",
			Message: "Employees reassigned to department",
			Meta: map[string]any{
				"request_id":           event.RequestID,
				"company_id":           event.CompanyID,
				"employee_ids":         event.EmployeeIDs,
				"target_department_id": target,
				"occurred_at":          event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee transfer message failed", zap.Error(err))
			continue
		}

		log.Info("employee transfer audited",
			zap.String("company_id", event.CompanyID),
			zap.Int("employee_count", len(event.EmployeeIDs)),
			zap.String("target_department_id", target),
		)
	}
}
