package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/hippomemory/internal/repository"
	"github.com/vytor/hippomemory/internal/repository/sqlite"
	"github.com/vytor/hippomemory/internal/testutil"
)

func TestKeyValueStore(t *testing.T) {
	suite.Run(t, &testutil.KeyValueStoreSuite{
		NewStore: func() repository.KeyValueStore {
			return sqlite.NewKeyValueStore(testutil.NewTestDB(t))
		},
	})
}
