package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

// MockNFTRepo is a mock of NFTRepository.
type MockNFTRepo struct {
	mock.Mock
}

func (m *MockNFTRepo) Upsert(ctx context.Context, nft *domain.NFT) error {
	args := m.Called(ctx, nft)
	return args.Error(0)
}

func (m *MockNFTRepo) GetByTokenID(ctx context.Context, tokenID int64) (*domain.NFT, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NFT), args.Error(1)
}

func (m *MockNFTRepo) Delete(ctx context.Context, tokenID int64) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockNFTRepo) List(ctx context.Context, filter domain.NFTFilter) ([]*domain.NFT, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.NFT), args.Int(1), args.Error(2)
}

func (m *MockNFTRepo) ListByCreator(ctx context.Context, creator string) ([]*domain.NFT, error) {
	args := m.Called(ctx, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NFT), args.Error(1)
}

func (m *MockNFTRepo) CountCreators(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockNFTRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockListingRepo is a mock of ListingRepository.
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Upsert(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepo) GetByListingID(ctx context.Context, listingID int64) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) Delete(ctx context.Context, listingID int64) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockListingRepo) List(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Int(1), args.Error(2)
}

func (m *MockListingRepo) ListBySeller(ctx context.Context, seller string) ([]*domain.Listing, error) {
	args := m.Called(ctx, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) ListedTokenIDs(ctx context.Context) (map[int64]bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockListingRepo) TotalVolume(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockListingRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
