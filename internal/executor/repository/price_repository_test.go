package repository

import (
	"context"
	"testing"
	"time"

	"golang-stock-signal/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar(ticker string, ts time.Time, price float64) entity.PriceBar {
	volume := int64(100)
	return entity.PriceBar{Ticker: ticker, Timestamp: ts, Price: decimal.NewFromFloat(price), Volume: &volume}
}

func TestPriceRepository_UpsertAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceRepository(newTestDB(t))
	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	_, err := repo.UpsertBars(ctx, []entity.PriceBar{
		bar("AAPL", base.Add(2*time.Hour), 102.5),
		bar("AAPL", base, 100.25),
		bar("AAPL", base.Add(time.Hour), 101),
		bar("MSFT", base, 400),
	})
	require.NoError(t, err)

	_, err = repo.UpsertBars(ctx, []entity.PriceBar{bar("AAPL", base.Add(time.Hour), 101.75)})
	require.NoError(t, err)

	all, err := repo.LoadHistory(ctx, "AAPL", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Timestamp.Equal(base))
	assert.True(t, all[2].Timestamp.Equal(base.Add(2*time.Hour)))
	assert.True(t, decimal.NewFromFloat(101.75).Equal(all[1].Price))

	recent, err := repo.LoadHistory(ctx, "AAPL", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Timestamp.Equal(base.Add(time.Hour)))
	assert.True(t, recent[1].Timestamp.Equal(base.Add(2*time.Hour)))

	none, err := repo.LoadHistory(ctx, "TSLA", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPriceRepository_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceRepository(newTestDB(t))
	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	_, err := repo.UpsertBars(ctx, []entity.PriceBar{
		bar("AAPL", base.AddDate(0, 0, -100), 90),
		bar("AAPL", base, 100),
		bar("MSFT", base.AddDate(0, 0, -100), 300),
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteOlderThan(ctx, "AAPL", base.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	msft, err := repo.LoadHistory(ctx, "MSFT", 0)
	require.NoError(t, err)
	assert.Len(t, msft, 1)
}
