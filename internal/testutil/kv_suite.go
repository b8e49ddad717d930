package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/hippomemory/internal/repository"
)

// KeyValueStoreSuite is the behavior every repository.KeyValueStore must share.
type KeyValueStoreSuite struct {
	suite.Suite
	NewStore func() repository.KeyValueStore
	store    repository.KeyValueStore
}

func (s *KeyValueStoreSuite) SetupTest() {
	s.store = s.NewStore()
}

func (s *KeyValueStoreSuite) TearDownTest() {
	MustClose(s.T(), s.store)
}

func (s *KeyValueStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "absent")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *KeyValueStoreSuite) TestSetThenGet() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "hippomemory_userId", []byte("user_1")))

	got, err := s.store.Get(ctx, "hippomemory_userId")
	s.Require().NoError(err)
	s.Assert().Equal([]byte("user_1"), got)
}

func (s *KeyValueStoreSuite) TestSetOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "progress", []byte(`{"v":1}`)))
	s.Require().NoError(s.store.Set(ctx, "progress", []byte(`{"v":2}`)))

	got, err := s.store.Get(ctx, "progress")
	s.Require().NoError(err)
	s.Assert().JSONEq(`{"v":2}`, string(got))
}

func (s *KeyValueStoreSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "gone", []byte("x")))
	s.Require().NoError(s.store.Delete(ctx, "gone"))
	s.Require().NoError(s.store.Delete(ctx, "never-existed"))

	_, err := s.store.Get(ctx, "gone")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *KeyValueStoreSuite) TestKeysAreIndependent() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "a", []byte("1")))
	s.Require().NoError(s.store.Set(ctx, "b", []byte("2")))

	a, err := s.store.Get(ctx, "a")
	s.Require().NoError(err)
	b, err := s.store.Get(ctx, "b")
	s.Require().NoError(err)
	s.Assert().Equal("1", string(a))
	s.Assert().Equal("2", string(b))
}
