package domain

import "context"

type NFTRepository interface {
	Upsert(ctx context.Context, nft *NFT) error
	GetByTokenID(ctx context.Context, tokenID int64) (*NFT, error)
	Delete(ctx context.Context, tokenID int64) error
	List(ctx context.Context, filter NFTFilter) ([]*NFT, int, error)
	ListByCreator(ctx context.Context, creator string) ([]*NFT, error)
	CountCreators(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

type ListingRepository interface {
	Upsert(ctx context.Context, listing *Listing) error
	GetByListingID(ctx context.Context, listingID int64) (*Listing, error)
	Delete(ctx context.Context, listingID int64) error
	List(ctx context.Context, filter ListingFilter) ([]*Listing, int, error)
	ListBySeller(ctx context.Context, seller string) ([]*Listing, error)
	ListedTokenIDs(ctx context.Context) (map[int64]bool, error)
	TotalVolume(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int, error)
}
