package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeAuditRepo struct {
	created []*entity.AuditLog
	err     error
}

func (r *fakeAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, log)
	return nil
}

func (r *fakeAuditRepo) FindAll(db *gorm.DB, page entity.Page) ([]entity.AuditLog, int64, error) {
	return nil, 0, nil
}

func (r *fakeAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return nil, nil
}

func TestAuditService_LogUpdateMetadata(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(quietLogger(), repo)
	actor := uuid.New()

	err := svc.LogUpdate(context.Background(), nil, &actor, entity.AuditActionHospitalBeds, "hospital", "7",
		map[string]int{"available_beds": 10}, map[string]int{"available_beds": 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one audit row, got %d", len(repo.created))
	}

	row := repo.created[0]
	if row.Action != entity.AuditActionHospitalBeds || row.UserID == nil || *row.UserID != actor {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Metadata["entity"] != "hospital" || row.Metadata["entity_id"] != "7" {
		t.Errorf("unexpected metadata: %v", row.Metadata)
	}
	if row.Metadata["old_value"] == nil || row.Metadata["new_value"] == nil {
		t.Errorf("expected both values in metadata: %v", row.Metadata)
	}
}

func TestAuditService_NilActorAndFailure(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(quietLogger(), repo)
	nilID := uuid.Nil

	if err := svc.LogCreate(context.Background(), nil, &nilID, entity.AuditActionUserRegister, "user", "x", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created[0].UserID != nil {
		t.Errorf("expected nil actor for uuid.Nil")
	}

	repo.err = errors.New("insert failed")
	if err := svc.LogDelete(context.Background(), nil, nil, entity.AuditActionHospitalDelete, "hospital", "1", nil); err == nil {
		t.Errorf("expected repository error to be returned")
	}
}

type cachedNumber struct {
	Value int `json:"value"`
}

func newTestCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatsCache(client, quietLogger(), time.Minute), mr
}

func TestCachedStats_ComputesOnceThenHits(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	compute := func(ctx context.Context) (*cachedNumber, error) {
		calls++
		return &cachedNumber{Value: 42}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := CachedStats(ctx, cache, "admin:dashboard", compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Value != 42 {
			t.Fatalf("expected 42, got %d", got.Value)
		}
	}
	if calls != 1 {
		t.Errorf("expected one computation, got %d", calls)
	}
	if !mr.Exists(StatsKeyPrefix + "admin:dashboard") {
		t.Errorf("expected value stored in redis")
	}
	if ttl := mr.TTL(StatsKeyPrefix + "admin:dashboard"); ttl != time.Minute {
		t.Errorf("expected ttl 1m, got %v", ttl)
	}
}

func TestCachedStats_ErrorIsNotCached(t *testing.T) {
	cache, mr := newTestCache(t)
	boom := errors.New("query failed")

	_, err := CachedStats(context.Background(), cache, "beds", func(ctx context.Context) (*cachedNumber, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if mr.Exists(StatsKeyPrefix + "beds") {
		t.Errorf("failed computation must not be cached")
	}
}

func TestCachedStats_RedisDownStillComputes(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	got, err := CachedStats(context.Background(), cache, "beds", func(ctx context.Context) (*cachedNumber, error) {
		return &cachedNumber{Value: 7}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value != 7 {
		t.Errorf("expected 7, got %d", got.Value)
	}
}

func TestCachedStats_NilCache(t *testing.T) {
	got, err := CachedStats(context.Background(), nil, "beds", func(ctx context.Context) (*cachedNumber, error) {
		return &cachedNumber{Value: 1}, nil
	})
	if err != nil || got.Value != 1 {
		t.Fatalf("expected direct computation, got %v, %v", got, err)
	}
}

func TestCachedStats_ConcurrentMissesShareComputation(t *testing.T) {
	cache, _ := newTestCache(t)
	var calls int32
	release := make(chan struct{})
	compute := func(ctx context.Context) (*cachedNumber, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &cachedNumber{Value: 5}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := CachedStats(context.Background(), cache, "slow", compute); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n < 1 || n > 5 {
		t.Errorf("unexpected computation count %d", n)
	}
}

func TestCachedStats_LeaderCancellationDoesNotFailWaiters(t *testing.T) {
	cache, mr := newTestCache(t)
	started := make(chan struct{})
	var startOnce sync.Once
	release := make(chan struct{})
	compute := func(ctx context.Context) (*cachedNumber, error) {
		startOnce.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &cachedNumber{Value: 9}, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	results := make(chan error, 2)
	go func() {
		_, err := CachedStats(leaderCtx, cache, "admin:dashboard", compute)
		results <- err
	}()
	<-started
	cancel()

	go func() {
		got, err := CachedStats(context.Background(), cache, "admin:dashboard", compute)
		if err == nil && got.Value != 9 {
			err = errors.New("unexpected value")
		}
		results <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			t.Fatalf("expected shared computation to succeed, got %v", err)
		}
	}
	if !mr.Exists(StatsKeyPrefix + "admin:dashboard") {
		t.Errorf("expected value stored despite the leader's cancellation")
	}
}

func TestStatsCache_Invalidate(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Set(StatsKeyPrefix+"admin:dashboard", "{}")
	mr.Set(StatsKeyPrefix+"beds", "{}")
	mr.Set("access_token:someone:1", "{}")

	cache.Invalidate(context.Background())

	if mr.Exists(StatsKeyPrefix+"admin:dashboard") || mr.Exists(StatsKeyPrefix+"beds") {
		t.Errorf("expected stats keys removed")
	}
	if !mr.Exists("access_token:someone:1") {
		t.Errorf("session keys must survive invalidation")
	}

	var nilCache *StatsCache
	nilCache.Invalidate(context.Background())
}

type fakePublisher struct {
	events []entity.AlertEvent
	err    error
	ctxErr error
}

func (p *fakePublisher) Publish(ctx context.Context, event entity.AlertEvent) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	p.ctxErr = ctx.Err()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func TestAlertBroadcast(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	tests := []struct {
		name  string
		alert *entity.HealthAlert
		want  int
	}{
		{"live alert", &entity.HealthAlert{ID: 1, IsActive: true, Severity: entity.SeverityCritical}, 1},
		{"inactive alert", &entity.HealthAlert{ID: 2, IsActive: false}, 0},
		{"expired alert", &entity.HealthAlert{ID: 3, IsActive: true, ExpiresAt: &past}, 0},
		{"nil alert", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			svc := NewAlertBroadcastService(pub, quietLogger()).(*alertBroadcastService)
			svc.now = func() time.Time { return now }

			svc.Broadcast(context.Background(), tt.alert)

			if len(pub.events) != tt.want {
				t.Fatalf("expected %d events, got %d", tt.want, len(pub.events))
			}
			if tt.want == 1 && !pub.events[0].PublishedAt.Equal(now) {
				t.Errorf("unexpected publish time %v", pub.events[0].PublishedAt)
			}
		})
	}
}

func TestAlertBroadcast_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewAlertBroadcastService(pub, quietLogger())

	svc.Broadcast(context.Background(), &entity.HealthAlert{ID: 9, IsActive: true})

	if len(pub.events) != 1 {
		t.Errorf("expected publish attempt")
	}
}

func TestAlertBroadcast_IgnoresCancelledRequest(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewAlertBroadcastService(pub, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Broadcast(ctx, &entity.HealthAlert{ID: 10, IsActive: true})

	if len(pub.events) != 1 {
		t.Fatalf("expected the alert to be published after the request ended")
	}
	if pub.ctxErr != nil {
		t.Errorf("expected a live publish context, got %v", pub.ctxErr)
	}
}

type fakeStorage struct {
	key         string
	contentType string
	body        []byte
	putErr      error
}

func (s *fakeStorage) Put(ctx context.Context, key, contentType string, body []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.key, s.contentType, s.body = key, contentType, body
	return nil
}

func (s *fakeStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://reports.example/" + key, nil
}

func TestReportService_ExportMetrics(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewReportService(storage, 15*time.Minute, quietLogger()).(*reportService)
	now := time.Date(2026, 8, 2, 6, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rows := []entity.HealthMetrics{
		{
			Date:               datatypes.Date(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
			Zone:               "Zone A",
			WardNumber:         4,
			TotalConsultations: 120,
			EmergencyVisits:    8,
			VaccinationsGiven:  300,
		},
	}

	result, err := svc.ExportMetrics(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rows != 1 || !result.ExpiresAt.Equal(now.Add(15*time.Minute)) {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(result.Key, "reports/health-metrics/20260802T063000Z-") {
		t.Errorf("unexpected key %s", result.Key)
	}
	if result.URL != "https://reports.example/"+result.Key {
		t.Errorf("unexpected url %s", result.URL)
	}
	if storage.contentType != "text/csv" {
		t.Errorf("unexpected content type %s", storage.contentType)
	}

	lines := strings.Split(strings.TrimSpace(string(storage.body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", storage.body)
	}
	if lines[1] != "2026-08-01,Zone A,4,120,8,0,300,0,0" {
		t.Errorf("unexpected csv row %q", lines[1])
	}
}

func TestReportService_NotConfigured(t *testing.T) {
	svc := NewReportService(nil, time.Minute, quietLogger())
	if svc.Enabled() {
		t.Errorf("expected exports disabled")
	}
	if _, err := svc.ExportMetrics(context.Background(), nil); !errors.Is(err, ErrStorageNotConfigured) {
		t.Errorf("expected ErrStorageNotConfigured, got %v", err)
	}
}
