package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/storage/memstore"
)

// Two in-process store sets stand in for the durable and fallback sides so
// dispatch can be observed directly.
func newTestRepository() (*storage.Repository, storage.Stores, storage.Stores, *bool) {
	durable := memstore.New()
	fallback := memstore.New()
	reachable := true
	repo := storage.NewRepository(durable, fallback, func() bool { return reachable })
	return repo, durable, fallback, &reachable
}

func TestDispatch_FallsBackWhenUnreachable(t *testing.T) {
	repo, durable, _, reachable := newTestRepository()
	*reachable = false

	created, err := repo.Transactions.Create("u1", models.KindExpense, 42, "Food", "", time.Now())
	require.NoError(t, err)

	// Served by the fallback store and retrievable through the facade while
	// the durable store stays down.
	found, err := repo.Transactions.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Nothing landed on the durable side.
	_, err = durable.Transactions.FindByID(created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDispatch_ReEvaluatedPerCall(t *testing.T) {
	repo, _, fallback, reachable := newTestRepository()

	*reachable = false
	offline, err := repo.Portfolios.Create("u1", "Offline", nil)
	require.NoError(t, err)

	*reachable = true
	online, err := repo.Portfolios.Create("u1", "Online", nil)
	require.NoError(t, err)

	// The durable side only sees the record created while reachable.
	list, err := repo.Portfolios.FindByUser("u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, online.ID, list[0].ID)

	// The offline record is still in the fallback store.
	_, err = fallback.Portfolios.FindByID(offline.ID)
	require.NoError(t, err)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo, _, _, _ := newTestRepository()

	_, err := repo.Users.Create("a@example.com", "hash", "Alice")
	require.NoError(t, err)
	_, err = repo.Users.Create("a@example.com", "hash2", "Imposter")
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestTransactionRepository_KindValidatedBeforeStorage(t *testing.T) {
	repo, durable, fallback, reachable := newTestRepository()

	_, err := repo.Transactions.Create("u1", "refund", 10, "", "", time.Now())
	assert.ErrorIs(t, err, storage.ErrInvalidKind)

	*reachable = false
	_, err = repo.Transactions.Create("u1", "refund", 10, "", "", time.Now())
	assert.ErrorIs(t, err, storage.ErrInvalidKind)

	// Neither store was touched.
	for _, stores := range []storage.Stores{durable, fallback} {
		list, err := stores.Transactions.FindByUser("u1")
		require.NoError(t, err)
		assert.Empty(t, list)
	}

	bad := "refund"
	_, err = repo.Transactions.UpdateByID("any", models.TransactionUpdate{Kind: &bad})
	assert.ErrorIs(t, err, storage.ErrInvalidKind)
}

func TestPortfolioRepository_RejectsNegativeAssets(t *testing.T) {
	repo, _, _, _ := newTestRepository()

	_, err := repo.Portfolios.Create("u1", "Bad", []models.Asset{{Symbol: "X", Quantity: -1, CurrentPrice: 10}})
	assert.ErrorIs(t, err, storage.ErrInvalidAsset)

	created, err := repo.Portfolios.Create("u1", "Good", []models.Asset{{Symbol: "X", Quantity: 1, CurrentPrice: 10}})
	require.NoError(t, err)

	negative := []models.Asset{{Symbol: "X", Quantity: 1, CurrentPrice: -5}}
	_, err = repo.Portfolios.UpdateByID(created.ID, models.PortfolioUpdate{Assets: &negative})
	assert.ErrorIs(t, err, storage.ErrInvalidAsset)
}

func TestPartialUpdate_OmittedFieldsUnchanged(t *testing.T) {
	repo, _, _, _ := newTestRepository()

	date := time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC)
	created, err := repo.Transactions.Create("u1", models.KindExpense, 99, "Food", "groceries", date)
	require.NoError(t, err)

	amount := 120.0
	updated, err := repo.Transactions.UpdateByID(created.ID, models.TransactionUpdate{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Amount)
	assert.Equal(t, models.KindExpense, updated.Kind)
	assert.Equal(t, "Food", updated.Category)
	assert.Equal(t, "groceries", updated.Description)
	assert.True(t, updated.Date.Equal(date))
}
