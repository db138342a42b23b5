package audit

import (
	"context"

	"go-storefront/internal/common/models"

	"go.uber.org/zap"
)

// AuditService records who changed what. Writes are best-effort: a failed
// audit insert is logged and never fails the calling operation.
type AuditService interface {
	Log(ctx context.Context, actor *models.User, action models.AuditAction, module, recordID string)
	LogChanges(ctx context.Context, actor *models.User, action models.AuditAction, module, recordID string, changes map[string]models.Change)
	History(ctx context.Context, module, recordID string, limit int64) ([]models.AuditLog, error)
}

type AuditServiceImpl struct {
	repo   AuditRepository
	logger *zap.Logger
}

func NewAuditService(repo AuditRepository, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{repo: repo, logger: logger}
}

func (s *AuditServiceImpl) Log(ctx context.Context, actor *models.User, action models.AuditAction, module, recordID string) {
	s.LogChanges(ctx, actor, action, module, recordID, nil)
}

func (s *AuditServiceImpl) LogChanges(ctx context.Context, actor *models.User, action models.AuditAction, module, recordID string, changes map[string]models.Change) {
	entry := &models.AuditLog{
		Action:   action,
		Module:   module,
		RecordID: recordID,
		Changes:  changes,
	}
	if actor != nil {
		entry.ActorID = actor.ID.Hex()
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warn("audit insert failed",
			zap.String("module", module),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func (s *AuditServiceImpl) History(ctx context.Context, module, recordID string, limit int64) ([]models.AuditLog, error) {
	return s.repo.ListByModule(ctx, module, recordID, limit)
}
