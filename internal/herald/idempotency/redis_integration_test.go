package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisImage = "redis:7-alpine"

type LockerSuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	container testcontainers.Container
	conn      *redis.Client
}

func TestLockerSuite(t *testing.T) {
	suite.Run(t, new(LockerSuite))
}

func (s *LockerSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	s.conn, err = Connect(s.ctx, endpoint, "", "", 0)
	s.Require().NoError(err)
}

func (s *LockerSuite) TearDownSuite() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *LockerSuite) SetupTest() {
	s.Require().NoError(s.conn.FlushDB(s.ctx).Err())
}

func (s *LockerSuite) newLocker() *Locker {
	l, err := NewLocker(s.conn, "mainnet", WithLockTTL(time.Minute))
	s.Require().NoError(err)
	return l
}

func (s *LockerSuite) TestOnlyOneOwnerAcquires() {
	a, b := s.newLocker(), s.newLocker()

	ok, err := a.TryAcquire(s.ctx, 100)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = b.TryAcquire(s.ctx, 100)
	s.Require().NoError(err)
	s.False(ok)

	ok, err = b.TryAcquire(s.ctx, 101)
	s.Require().NoError(err)
	s.True(ok, "other heights stay free")
}

func (s *LockerSuite) TestReleaseByOwnerOnly() {
	a, b := s.newLocker(), s.newLocker()

	ok, err := a.TryAcquire(s.ctx, 7)
	s.Require().NoError(err)
	s.Require().True(ok)

	s.Require().NoError(b.Release(s.ctx, 7))
	ok, err = b.TryAcquire(s.ctx, 7)
	s.Require().NoError(err)
	s.False(ok, "foreign release is a no-op")

	s.Require().NoError(a.Release(s.ctx, 7))
	ok, err = b.TryAcquire(s.ctx, 7)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *LockerSuite) TestProcessedHeightIsNeverReacquired() {
	a, b := s.newLocker(), s.newLocker()

	ok, err := a.TryAcquire(s.ctx, 9)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().NoError(a.MarkProcessed(s.ctx, 9))

	for _, l := range []*Locker{a, b} {
		ok, err = l.TryAcquire(s.ctx, 9)
		s.Require().NoError(err)
		s.False(ok)
	}

	ttl, err := s.conn.TTL(s.ctx, processedKey("mainnet", 9)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 24*time.Hour)
}

func (s *LockerSuite) TestLockExpires() {
	l, err := NewLocker(s.conn, "mainnet", WithLockTTL(time.Second))
	s.Require().NoError(err)

	ok, err := l.TryAcquire(s.ctx, 5)
	s.Require().NoError(err)
	s.Require().True(ok)

	s.Eventually(func() bool {
		other := s.newLocker()
		ok, err := other.TryAcquire(s.ctx, 5)
		return err == nil && ok
	}, 5*time.Second, 100*time.Millisecond)
}
