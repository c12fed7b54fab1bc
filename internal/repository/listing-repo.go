package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

type listingRepo struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) domain.ListingRepository {
	return &listingRepo{pool: pool}
}

func (r *listingRepo) Upsert(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO dgc_listing
			(listing_id, token_id, seller_address, name, description, image_url,
			 content_type, price, listing_type, auction_end_time, highest_bid,
			 total_royalty, creator_address, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (listing_id) DO UPDATE SET
			token_id=EXCLUDED.token_id, seller_address=EXCLUDED.seller_address,
			name=EXCLUDED.name, description=EXCLUDED.description,
			image_url=EXCLUDED.image_url, content_type=EXCLUDED.content_type,
			price=EXCLUDED.price, listing_type=EXCLUDED.listing_type,
			auction_end_time=EXCLUDED.auction_end_time,
			highest_bid=EXCLUDED.highest_bid,
			total_royalty=EXCLUDED.total_royalty,
			creator_address=EXCLUDED.creator_address
	`

	_, err := r.pool.Exec(ctx, query,
		listing.ListingID, listing.TokenID, listing.SellerAddress,
		listing.Name, listing.Description, listing.ImageURL,
		string(listing.ContentType), listing.Price, string(listing.ListingType),
		listing.AuctionEndTime, listing.HighestBid, listing.TotalRoyalty,
		listing.CreatorAddress, listing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert listing: %w", err)
	}
	return nil
}

func (r *listingRepo) GetByListingID(ctx context.Context, listingID int64) (*domain.Listing, error) {
	query := `
		SELECT listing_id, token_id, seller_address, name, description, image_url,
			   content_type, price, listing_type, auction_end_time, highest_bid,
			   total_royalty, creator_address, created_at
		FROM dgc_listing
		WHERE listing_id = $1
	`

	listing, err := scanListing(r.pool.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("get listing by id: %w", err)
	}
	return listing, nil
}

func (r *listingRepo) Delete(ctx context.Context, listingID int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM dgc_listing WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *listingRepo) List(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filter.ContentType != "" {
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", argPos))
		args = append(args, string(filter.ContentType))
		argPos++
	}
	if filter.ListingType != "" {
		conditions = append(conditions, fmt.Sprintf("listing_type = $%d", argPos))
		args = append(args, string(filter.ListingType))
		argPos++
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price::numeric >= $%d", argPos))
		args = append(args, *filter.MinPrice)
		argPos++
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price::numeric <= $%d", argPos))
		args = append(args, *filter.MaxPrice)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR creator_address ILIKE $%d OR seller_address ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM dgc_listing WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	orderBy := "created_at DESC, listing_id DESC"
	switch filter.Sort {
	case domain.ListingSortPriceLow:
		orderBy = "price::numeric ASC"
	case domain.ListingSortPriceHigh:
		orderBy = "price::numeric DESC"
	}

	query := fmt.Sprintf(`
		SELECT listing_id, token_id, seller_address, name, description, image_url,
			   content_type, price, listing_type, auction_end_time, highest_bid,
			   total_royalty, creator_address, created_at
		FROM dgc_listing
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, argPos, argPos+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listing rows: %w", err)
	}

	return listings, total, nil
}

func (r *listingRepo) ListBySeller(ctx context.Context, seller string) ([]*domain.Listing, error) {
	query := `
		SELECT listing_id, token_id, seller_address, name, description, image_url,
			   content_type, price, listing_type, auction_end_time, highest_bid,
			   total_royalty, creator_address, created_at
		FROM dgc_listing
		WHERE LOWER(seller_address) = LOWER($1)
		ORDER BY listing_id ASC
	`

	rows, err := r.pool.Query(ctx, query, seller)
	if err != nil {
		return nil, fmt.Errorf("list listings by seller: %w", err)
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	return listings, nil
}

func (r *listingRepo) ListedTokenIDs(ctx context.Context) (map[int64]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT token_id FROM dgc_listing`)
	if err != nil {
		return nil, fmt.Errorf("list listed token ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var tokenID int64
		if err := rows.Scan(&tokenID); err != nil {
			return nil, fmt.Errorf("scan token id: %w", err)
		}
		ids[tokenID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token id rows: %w", err)
	}

	return ids, nil
}

func (r *listingRepo) TotalVolume(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(price::numeric), 0) FROM dgc_listing`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum listing volume: %w", err)
	}
	return total, nil
}

func (r *listingRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dgc_listing`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return count, nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	listing := &domain.Listing{}
	var contentType, listingType string

	err := row.Scan(
		&listing.ListingID, &listing.TokenID, &listing.SellerAddress,
		&listing.Name, &listing.Description, &listing.ImageURL,
		&contentType, &listing.Price, &listingType,
		&listing.AuctionEndTime, &listing.HighestBid, &listing.TotalRoyalty,
		&listing.CreatorAddress, &listing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	listing.ContentType = domain.ContentType(contentType)
	listing.ListingType = domain.ListingType(listingType)
	return listing, nil
}
