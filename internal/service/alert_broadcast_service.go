package service

import (
	"context"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

const alertPublishTimeout = 5 * time.Second

// AlertPublisher delivers alert events to a broker.
type AlertPublisher interface {
	Publish(ctx context.Context, event entity.AlertEvent) error
	Close() error
}

// AlertBroadcaster announces alerts that went live. Delivery failures are
// logged and never fail the caller.
type AlertBroadcaster interface {
	Broadcast(ctx context.Context, alert *entity.HealthAlert)
}

type alertBroadcastService struct {
	publisher AlertPublisher
	log       *logrus.Logger
	now       func() time.Time
}

func NewAlertBroadcastService(publisher AlertPublisher, log *logrus.Logger) AlertBroadcaster {
	return &alertBroadcastService{
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *alertBroadcastService) Broadcast(ctx context.Context, alert *entity.HealthAlert) {
	if alert == nil || !alert.IsLive(s.now()) {
		return
	}

	// Publishing ignores request cancellation and is bounded by alertPublishTimeout.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertPublishTimeout)
	defer cancel()

	event := entity.NewAlertEvent(alert, s.now())
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.log.Warnf("Failed to broadcast alert %d: %+v", alert.ID, err)
		return
	}
	s.log.Infof("Alert broadcast: id=%d, severity=%s, zones=%v", alert.ID, alert.Severity, alert.Zones)
}

// LogAlertPublisher is used when no broker is configured.
type LogAlertPublisher struct {
	log *logrus.Logger
}

func NewLogAlertPublisher(log *logrus.Logger) *LogAlertPublisher {
	return &LogAlertPublisher{log: log}
}

func (p *LogAlertPublisher) Publish(ctx context.Context, event entity.AlertEvent) error {
	p.log.WithFields(logrus.Fields{
		"alert_id": event.AlertID,
		"severity": event.Severity,
		"zones":    event.Zones,
	}).Info("Alert published without broker")
	return nil
}

func (p *LogAlertPublisher) Close() error {
	return nil
}
