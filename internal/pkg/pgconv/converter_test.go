//go:build unit

package pgconv_test

import (
	"math/big"
	"testing"
	"time"

	"storefront-pricing/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalFromNumeric(t *testing.T) {
	tests := []struct {
		name    string
		in      pgtype.Numeric
		want    string
		wantErr error
	}{
		{name: "整数", in: pgtype.Numeric{Int: big.NewInt(499), Exp: 0, Valid: true}, want: "499"},
		{name: "小数", in: pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}, want: "123.45"},
		{name: "NULL", in: pgtype.Numeric{}, wantErr: pgconv.ErrNullNumeric},
		{name: "NaN", in: pgtype.Numeric{NaN: true, Valid: true}, wantErr: pgconv.ErrInvalidNumeric},
		{name: "無限大", in: pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}, wantErr: pgconv.ErrInvalidNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pgconv.DecimalFromNumeric(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDecimalToNumeric(t *testing.T) {
	n := pgconv.DecimalToNumeric(decimal.RequireFromString("80.50"))

	got, err := pgconv.DecimalFromNumeric(n)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("80.5")))
}

func TestNullableHelpers(t *testing.T) {
	assert.Nil(t, pgconv.IntPtrFromPgtype(pgtype.Int4{}))
	assert.Equal(t, 12, *pgconv.IntPtrFromPgtype(pgtype.Int4{Int32: 12, Valid: true}))

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
	now := time.Now()
	assert.Equal(t, now, *pgconv.TimePtrFromPgtype(pgtype.Timestamptz{Time: now, Valid: true}))

	d, err := pgconv.DecimalPtrFromNumeric(pgtype.Numeric{})
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.True(t, pgconv.DecimalOrZero(pgtype.Numeric{}).IsZero())
}

func TestParseUUIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	got, err := pgconv.ParseUUIDs(pgconv.UUIDStrings(ids))
	require.NoError(t, err)
	assert.Equal(t, ids, got)

	_, err = pgconv.ParseUUIDs([]string{"nope"})
	require.Error(t, err)
}
