package readstore

import (
	"context"

	"rental-booking/internal/domain/money"
	"rental-booking/internal/domain/rental"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/pkg/ptr"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RentalReadStore struct {
	db db.DBTX
}

func NewRentalReadStore(db db.DBTX) *RentalReadStore {
	return &RentalReadStore{db: db}
}

func (r *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	ds := dialect.From(tblRentals).
		Select(
			"id", "host_id", "title", "price_per_night", "cleaning_fee",
			"security_deposit", "max_guests", "is_active", "is_approved",
		).
		Where(goqu.C("id").Eq(id))

	query, args, err := toSQL(ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rental query", err)
	}

	var (
		rentalID, hostID uuid.UUID
		title            string
		pricePerNight    int64
		cleaningFee      pgtype.Int8
		securityDeposit  pgtype.Int8
		maxGuests        int32
		isActive         bool
		isApproved       bool
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&rentalID, &hostID, &title, &pricePerNight, &cleaningFee,
		&securityDeposit, &maxGuests, &isActive, &isApproved,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental by ID", err)
	}

	return rental.Reconstruct(rental.Params{
		ID:              rentalID,
		HostID:          hostID,
		Title:           title,
		PricePerNight:   money.FromMinorUnits(pricePerNight),
		CleaningFee:     optionalMoney(cleaningFee),
		SecurityDeposit: optionalMoney(securityDeposit),
		MaxGuests:       int(maxGuests),
		IsActive:        isActive,
		IsApproved:      isApproved,
	}), nil
}

func optionalMoney(v pgtype.Int8) *money.Money {
	minor := pgconv.Int64PtrFromPgtype(v)
	if minor == nil {
		return nil
	}
	return ptr.Of(money.FromMinorUnits(*minor))
}
