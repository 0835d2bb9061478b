package service

import (
	"context"
	"sync"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/rs/zerolog"
)

const auditWriteTimeout = 5 * time.Second

// AuditService logs every audited action and, when a repository is set,
// persists it off the request path. Wait drains writes still in flight.
type AuditService struct {
	repo     ports.AuditRepository
	log      zerolog.Logger
	inflight sync.WaitGroup
}

// NewAuditService accepts a nil repo, in which case entries only reach the log.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

func (s *AuditService) Log(ctx context.Context, entry *domain.AuditLog) {
	ev := s.log.Info().
		Str("action", string(entry.Action)).
		Str("resource_type", entry.ResourceType).
		Str("resource_id", entry.ResourceID).
		Str("ip", entry.IPAddress)
	if entry.Actor != nil {
		ev = ev.Str("actor", *entry.Actor)
	}
	ev.Msg("audit")

	if s.repo == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
		defer cancel()
		if err := s.repo.Create(writeCtx, entry); err != nil {
			s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
		}
	}()
}

// Wait blocks until every persisted entry has been written or has failed.
func (s *AuditService) Wait() {
	s.inflight.Wait()
}
