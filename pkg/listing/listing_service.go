package listing

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"FoodShare-Backend/internal/cache"
	"FoodShare-Backend/internal/utils/storage"
	"FoodShare-Backend/pkg/user"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	feedCachePrefix = "feed:"
	feedCacheTTL    = 30 * time.Second
)

type (
	ListingService interface {
		CreateListing(ctx context.Context, req domain.CreateListingRequest, userID string) (*domain.FoodListing, error)
		GetListingByID(ctx context.Context, id string) (*domain.FoodListing, error)
		BrowseFeed(ctx context.Context, filter domain.ListingFilter, page, limit int) ([]*domain.FoodListing, int64, error)
		GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*domain.FoodListing, int64, error)
		UpdateListingStatus(ctx context.Context, id string, req domain.UpdateListingStatusRequest, userID string) error
		DeleteListing(ctx context.Context, id string, userID string) error
		GetStatistics(ctx context.Context, userID string) (*domain.ListingStatistics, error)
	}

	listingService struct {
		listingRepository ListingRepository
		userRepository    user.UserRepository
		s3                storage.AwsS3
		feedCache         cache.Store
	}

	cachedFeed struct {
		Items []*domain.FoodListing `json:"items"`
		Total int64                 `json:"total"`
	}
)

func NewListingService(listingRepository ListingRepository, userRepository user.UserRepository, s3 storage.AwsS3, feedCache cache.Store) ListingService {
	return &listingService{
		listingRepository: listingRepository,
		userRepository:    userRepository,
		s3:                s3,
		feedCache:         feedCache,
	}
}

func (s *listingService) CreateListing(ctx context.Context, req domain.CreateListingRequest, userID string) (*domain.FoodListing, error) {
	expirationDate, err := time.Parse("2006-01-02", req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// Tags are stored comma separated, so a tag carrying a comma would split
	// into two on the way back out.
	dietaryTags := make([]string, 0, len(req.DietaryTags))
	for _, tag := range req.DietaryTags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if strings.Contains(tag, ",") {
			return nil, domain.ErrInvalidDietaryTag
		}
		dietaryTags = append(dietaryTags, tag)
	}

	listingID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("listing-%s", listingID.String()),
			req.Image,
			"listings",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	// A listing with a portion counter starts with every portion available.
	var availablePortions *int
	if req.TotalPortions != nil {
		available := *req.TotalPortions
		availablePortions = &available
	}

	listing := &entities.FoodListing{
		ID:                listingID,
		UserID:            userUUID,
		UserName:          owner.Name,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Quantity:          req.Quantity,
		TotalPortions:     req.TotalPortions,
		AvailablePortions: availablePortions,
		ExpirationDate:    expirationDate,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ImageURL:          imageURL,
		DietaryTags:       strings.Join(dietaryTags, ","),
		Status:            domain.ListingStatusAvailable,
	}

	if err := s.listingRepository.CreateListing(ctx, listing); err != nil {
		return nil, err
	}

	s.feedCache.InvalidatePrefix(ctx, feedCachePrefix)

	return mapListing(listing), nil
}

func (s *listingService) GetListingByID(ctx context.Context, id string) (*domain.FoodListing, error) {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return mapListing(listing), nil
}

func (s *listingService) BrowseFeed(ctx context.Context, filter domain.ListingFilter, page, limit int) ([]*domain.FoodListing, int64, error) {
	key := fmt.Sprintf("%s%s:%s:%s:%s:%d:%d",
		feedCachePrefix, filter.Status, filter.Category, filter.ExcludeOwnerID, filter.Search, page, limit)

	if raw, ok := s.feedCache.Get(ctx, key); ok {
		var cached cachedFeed
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.Items, cached.Total, nil
		}
	}

	listings, count, err := s.listingRepository.GetListings(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.FoodListing, 0, len(listings))
	for _, listing := range listings {
		result = append(result, mapListing(listing))
	}

	if raw, err := json.Marshal(cachedFeed{Items: result, Total: count}); err == nil {
		s.feedCache.Set(ctx, key, raw, feedCacheTTL)
	}

	return result, count, nil
}

func (s *listingService) GetUserListings(ctx context.Context, userID string, status string, page, limit int) ([]*domain.FoodListing, int64, error) {
	filter := domain.ListingFilter{OwnerID: userID, Status: status}

	listings, count, err := s.listingRepository.GetListings(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.FoodListing, 0, len(listings))
	for _, listing := range listings {
		result = append(result, mapListing(listing))
	}

	return result, count, nil
}

// UpdateListingStatus is the owner's manual override. It bypasses the portion
// accounting on purpose: an owner can flip a listing back to available or close
// it out regardless of the counter.
func (s *listingService) UpdateListingStatus(ctx context.Context, id string, req domain.UpdateListingStatusRequest, userID string) error {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrListingNotFound
		}
		return err
	}

	if listing.UserID.String() != userID {
		return domain.ErrUnauthorizedListingAccess
	}

	if err := s.listingRepository.UpdateListingStatus(ctx, id, req.Status); err != nil {
		return err
	}

	s.feedCache.InvalidatePrefix(ctx, feedCachePrefix)
	return nil
}

func (s *listingService) DeleteListing(ctx context.Context, id string, userID string) error {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrListingNotFound
		}
		return err
	}

	if listing.UserID.String() != userID {
		return domain.ErrUnauthorizedListingAccess
	}

	if err := s.listingRepository.DeleteListing(ctx, id); err != nil {
		return err
	}

	s.feedCache.InvalidatePrefix(ctx, feedCachePrefix)
	return nil
}

// GetStatistics feeds the provider dashboard: the user's listings by status.
func (s *listingService) GetStatistics(ctx context.Context, userID string) (*domain.ListingStatistics, error) {
	stats, err := s.listingRepository.GetListingStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.ListingStatistics{
		AvailableListings: int(stats["available_listings"].(int64)),
		ReservedListings:  int(stats["reserved_listings"].(int64)),
		CompletedListings: int(stats["completed_listings"].(int64)),
		TotalListings:     int(stats["total_listings"].(int64)),
	}, nil
}

func mapListing(listing *entities.FoodListing) *domain.FoodListing {
	status := listing.Status
	if status == domain.ListingStatusAvailable && listing.ExpirationDate.Before(time.Now()) {
		status = domain.ListingStatusExpired
	}

	var dietaryTags []string
	if listing.DietaryTags != "" {
		dietaryTags = strings.Split(listing.DietaryTags, ",")
	}

	return &domain.FoodListing{
		ID:                listing.ID.String(),
		UserID:            listing.UserID.String(),
		UserName:          listing.UserName,
		Title:             listing.Title,
		Description:       listing.Description,
		Category:          listing.Category,
		Quantity:          listing.Quantity,
		TotalPortions:     listing.TotalPortions,
		AvailablePortions: listing.AvailablePortions,
		ExpirationDate:    listing.ExpirationDate,
		Address:           listing.Address,
		Latitude:          listing.Latitude,
		Longitude:         listing.Longitude,
		ImageURL:          listing.ImageURL,
		DietaryTags:       dietaryTags,
		Status:            status,
		CreatedAt:         listing.CreatedAt,
	}
}
