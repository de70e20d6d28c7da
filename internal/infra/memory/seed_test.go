//go:build unit

package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rental-booking/internal/domain/money"
	"rental-booking/internal/infra/memory"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `[
  {
    "id": "7b0c1f5e-4a65-4c1b-9f0e-6a1f2d3c4b5a",
    "hostId": "0e7d9a4b-2c1f-4e3d-8b6a-5f4e3d2c1b0a",
    "title": "Seaside Cottage",
    "pricePerNight": "100.00",
    "cleaningFee": "50",
    "maxGuests": 4
  },
  {
    "id": "3f2e1d0c-9b8a-4766-8554-433221100fed",
    "hostId": "0e7d9a4b-2c1f-4e3d-8b6a-5f4e3d2c1b0a",
    "title": "City Loft",
    "pricePerNight": "89.5",
    "securityDeposit": "200.00",
    "maxGuests": 2,
    "isApproved": false
  }
]`

func TestDecodeRentals(t *testing.T) {
	rentals, err := memory.DecodeRentals(strings.NewReader(seedJSON))
	require.NoError(t, err)
	require.Len(t, rentals, 2)

	cottage, loft := rentals[0], rentals[1]

	assert.Equal(t, int64(10000), cottage.PricePerNight().MinorUnits())
	require.NotNil(t, cottage.CleaningFee())
	assert.Equal(t, int64(5000), cottage.CleaningFee().MinorUnits())
	assert.Nil(t, cottage.SecurityDeposit())
	assert.True(t, cottage.IsBookable())

	assert.Equal(t, int64(8950), loft.PricePerNight().MinorUnits())
	assert.Equal(t, money.Zero(), loft.CleaningFeeOrZero())
	assert.Equal(t, int64(20000), loft.SecurityDeposit().MinorUnits())
	assert.True(t, loft.IsActive())
	assert.False(t, loft.IsBookable())
}

func TestDecodeRentals_Invalid(t *testing.T) {
	id, host := uuid.NewString(), uuid.NewString()

	cases := []struct {
		name string
		json string
		msg  string
	}{
		{"not json", `{`, "decode"},
		{"missing id", `[{"hostId":"` + host + `","pricePerNight":"10","maxGuests":1}]`, "required"},
		{"no guests", `[{"id":"` + id + `","hostId":"` + host + `","pricePerNight":"10","maxGuests":0}]`, "maxGuests"},
		{"negative price", `[{"id":"` + id + `","hostId":"` + host + `","pricePerNight":"-10","maxGuests":1}]`, "pricePerNight"},
		{"three decimals", `[{"id":"` + id + `","hostId":"` + host + `","pricePerNight":"10","cleaningFee":"1.005","maxGuests":1}]`, "cleaningFee"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := memory.DecodeRentals(strings.NewReader(tc.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestStore_SeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))

	store := memory.NewStore()
	n, err := store.SeedFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	id := uuid.MustParse("7b0c1f5e-4a65-4c1b-9f0e-6a1f2d3c4b5a")
	err = store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.ReadTx) error {
		r, err := tx.Rentals().RentalByID(ctx, id)
		if err != nil {
			return err
		}
		assert.Equal(t, "Seaside Cottage", r.Title())
		return nil
	})
	require.NoError(t, err)

	_, err = store.SeedFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
