package listing

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ListingRepository interface {
		CreateListing(ctx context.Context, listing *entities.FoodListing) error
		GetListingByID(ctx context.Context, id string) (*entities.FoodListing, error)
		UpdateListing(ctx context.Context, listing *entities.FoodListing) error
		DeleteListing(ctx context.Context, id string) error
		GetListings(ctx context.Context, filter domain.ListingFilter, page, limit int) ([]*entities.FoodListing, int64, error)
		UpdateListingStatus(ctx context.Context, id string, status string) error
		GetListingStatistics(ctx context.Context, userID string) (map[string]interface{}, error)
	}

	listingRepository struct {
		db *gorm.DB
	}
)

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) CreateListing(ctx context.Context, listing *entities.FoodListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetListingByID(ctx context.Context, id string) (*entities.FoodListing, error) {
	var listing entities.FoodListing
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) UpdateListing(ctx context.Context, listing *entities.FoodListing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepository) DeleteListing(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.FoodListing{}, "id = ?", id).Error
}

func (r *listingRepository) GetListings(ctx context.Context, filter domain.ListingFilter, page, limit int) ([]*entities.FoodListing, int64, error) {
	var listings []*entities.FoodListing
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.FoodListing{})

	if filter.Status != "all" && filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "all" && filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.OwnerID != "" {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if filter.ExcludeOwnerID != "" {
		query = query.Where("user_id != ?", filter.ExcludeOwnerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR address ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, count, nil
}

func (r *listingRepository) UpdateListingStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.FoodListing{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *listingRepository) GetListingStatistics(ctx context.Context, userID string) (map[string]interface{}, error) {
	countByStatus := func(status string) (int64, error) {
		var count int64
		query := r.db.WithContext(ctx).
			Model(&entities.FoodListing{}).
			Where("user_id = ?", userID)
		if status != "" {
			query = query.Where("status = ?", status)
		}
		err := query.Count(&count).Error
		return count, err
	}

	available, err := countByStatus(domain.ListingStatusAvailable)
	if err != nil {
		return nil, err
	}
	reserved, err := countByStatus(domain.ListingStatusReserved)
	if err != nil {
		return nil, err
	}
	completed, err := countByStatus(domain.ListingStatusCompleted)
	if err != nil {
		return nil, err
	}
	total, err := countByStatus("")
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"available_listings": available,
		"reserved_listings":  reserved,
		"completed_listings": completed,
		"total_listings":     total,
	}, nil
}
