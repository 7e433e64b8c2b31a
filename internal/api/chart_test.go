package api

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// pngMagic is the 8-byte PNG file signature.
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestRenderCategoryPie(t *testing.T) {
	t.Parallel()

	totals := []repository.CategoryTotal{
		{Category: "Rent", Total: decimal.NewFromInt(15000)},
		{Category: "Food", Total: decimal.NewFromInt(8000)},
		{Category: "Shopping", Total: decimal.NewFromInt(3000)},
	}

	png, err := RenderCategoryPie(totals, "2026-08")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic), "output is not a PNG")

	t.Run("no data is an error", func(t *testing.T) {
		t.Parallel()
		_, err := RenderCategoryPie(nil, "2026-08")
		require.Error(t, err)
	})

	t.Run("single category renders", func(t *testing.T) {
		t.Parallel()
		png, err := RenderCategoryPie([]repository.CategoryTotal{
			{Category: "Food", Total: decimal.NewFromInt(100)},
		}, "2026-08")
		require.NoError(t, err)
		require.NotEmpty(t, png)
	})
}
