package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

// MemoryNFTRepo is the in-process NFT index used when no database is
// configured, and by tests.
type MemoryNFTRepo struct {
	mu   sync.RWMutex
	nfts map[int64]*domain.NFT
}

func NewMemoryNFTRepo() *MemoryNFTRepo {
	return &MemoryNFTRepo{nfts: make(map[int64]*domain.NFT)}
}

func (r *MemoryNFTRepo) Upsert(_ context.Context, nft *domain.NFT) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *nft
	r.nfts[nft.TokenID] = &copied
	return nil
}

func (r *MemoryNFTRepo) GetByTokenID(_ context.Context, tokenID int64) (*domain.NFT, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nft, ok := r.nfts[tokenID]
	if !ok {
		return nil, domain.ErrNFTNotFound
	}
	copied := *nft
	return &copied, nil
}

func (r *MemoryNFTRepo) Delete(_ context.Context, tokenID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nfts[tokenID]; !ok {
		return domain.ErrNFTNotFound
	}
	delete(r.nfts, tokenID)
	return nil
}

func (r *MemoryNFTRepo) sorted() []*domain.NFT {
	all := make([]*domain.NFT, 0, len(r.nfts))
	for _, nft := range r.nfts {
		all = append(all, nft)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].TokenID > all[j].TokenID
	})
	return all
}

func (r *MemoryNFTRepo) List(_ context.Context, filter domain.NFTFilter) ([]*domain.NFT, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*domain.NFT{}
	for _, nft := range r.sorted() {
		if filter.ContentType != "" && nft.ContentType != filter.ContentType {
			continue
		}
		if filter.Creator != "" && !strings.EqualFold(nft.CreatorAddress, filter.Creator) {
			continue
		}
		matched = append(matched, nft)
	}
	total := len(matched)

	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	page := make([]*domain.NFT, end-start)
	for i, nft := range matched[start:end] {
		copied := *nft
		page[i] = &copied
	}
	return page, total, nil
}

func (r *MemoryNFTRepo) ListByCreator(_ context.Context, creator string) ([]*domain.NFT, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*domain.NFT{}
	for _, nft := range r.sorted() {
		if strings.EqualFold(nft.CreatorAddress, creator) {
			copied := *nft
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *MemoryNFTRepo) CountCreators(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	creators := make(map[string]bool)
	for _, nft := range r.nfts {
		creators[strings.ToLower(nft.CreatorAddress)] = true
	}
	return len(creators), nil
}

func (r *MemoryNFTRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nfts), nil
}

// MemoryListingRepo is the in-process marketplace index.
type MemoryListingRepo struct {
	mu       sync.RWMutex
	listings map[int64]*domain.Listing
}

func NewMemoryListingRepo() *MemoryListingRepo {
	return &MemoryListingRepo{listings: make(map[int64]*domain.Listing)}
}

func (r *MemoryListingRepo) Upsert(_ context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *listing
	r.listings[listing.ListingID] = &copied
	return nil
}

func (r *MemoryListingRepo) GetByListingID(_ context.Context, listingID int64) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (r *MemoryListingRepo) Delete(_ context.Context, listingID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listingID]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.listings, listingID)
	return nil
}

func priceOf(l *domain.Listing) float64 {
	p, _ := strconv.ParseFloat(l.Price, 64)
	return p
}

func matchesSearch(l *domain.Listing, needle string) bool {
	needle = strings.ToLower(needle)
	return strings.Contains(strings.ToLower(l.Name), needle) ||
		strings.Contains(strings.ToLower(l.Description), needle) ||
		strings.Contains(strings.ToLower(l.CreatorAddress), needle) ||
		strings.Contains(strings.ToLower(l.SellerAddress), needle)
}

func (r *MemoryListingRepo) List(_ context.Context, filter domain.ListingFilter) ([]*domain.Listing, int, error) {
	r.mu.RLock()
	matched := []*domain.Listing{}
	for _, listing := range r.listings {
		if filter.ContentType != "" && listing.ContentType != filter.ContentType {
			continue
		}
		if filter.ListingType != "" && listing.ListingType != filter.ListingType {
			continue
		}
		if filter.MinPrice != nil && priceOf(listing) < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && priceOf(listing) > *filter.MaxPrice {
			continue
		}
		if filter.Search != "" && !matchesSearch(listing, filter.Search) {
			continue
		}
		matched = append(matched, listing)
	}
	r.mu.RUnlock()

	switch filter.Sort {
	case domain.ListingSortPriceLow:
		sort.Slice(matched, func(i, j int) bool { return priceOf(matched[i]) < priceOf(matched[j]) })
	case domain.ListingSortPriceHigh:
		sort.Slice(matched, func(i, j int) bool { return priceOf(matched[i]) > priceOf(matched[j]) })
	default:
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
			return matched[i].ListingID > matched[j].ListingID
		})
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	page := make([]*domain.Listing, end-start)
	for i, listing := range matched[start:end] {
		copied := *listing
		page[i] = &copied
	}
	return page, total, nil
}

func (r *MemoryListingRepo) ListBySeller(_ context.Context, seller string) ([]*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*domain.Listing{}
	for _, listing := range r.listings {
		if strings.EqualFold(listing.SellerAddress, seller) {
			copied := *listing
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ListingID < matched[j].ListingID })
	return matched, nil
}

func (r *MemoryListingRepo) ListedTokenIDs(_ context.Context) (map[int64]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[int64]bool, len(r.listings))
	for _, listing := range r.listings {
		ids[listing.TokenID] = true
	}
	return ids, nil
}

func (r *MemoryListingRepo) TotalVolume(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0.0
	for _, listing := range r.listings {
		total += priceOf(listing)
	}
	return total, nil
}

func (r *MemoryListingRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listings), nil
}
