package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/icyapa/internal/models"
)

// Schema is the DDL for the tables LoadPostgres reads.
//
//go:embed schema.sql
var Schema string

// Querier is the subset of *pgxpool.Pool used by LoadPostgres.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Rows are read in their insertion order (position) so the store keeps the
// same display order as the source tables.
const (
	zonesQuery = `
		SELECT zone_id, zone_name, zone_description, qr_code_url, slug
		FROM street_zones
		ORDER BY position`

	buildingsQuery = `
		SELECT building_id, building_name, building_address, street_zone_id,
			latitude, longitude, qr_code_url, total_floors, slug, is_user_suggested
		FROM buildings
		ORDER BY position`

	businessesQuery = `
		SELECT business_id, business_name, building_id, floor_number, unit_number,
			categories, phone, email, COALESCE(website, ''), social_links,
			business_hours, description, navigation_instructions, photos,
			is_claimed, is_verified,
			COALESCE(owner_name, ''), COALESCE(owner_email, ''), COALESCE(owner_phone, '')
		FROM businesses
		ORDER BY position`

	adsQuery = `
		SELECT ad_id, advertiser_business_id, ad_type, image_url, ad_text, cta,
			COALESCE(target_location, ''), COALESCE(target_category, ''), is_active
		FROM ads
		ORDER BY position`
)

// LoadPostgres reads a complete dataset from PostgreSQL and validates it.
func LoadPostgres(ctx context.Context, db Querier) (Dataset, error) {
	var ds Dataset
	var err error

	if ds.Zones, err = queryAll(ctx, db, zonesQuery, scanZone); err != nil {
		return Dataset{}, fmt.Errorf("failed to load street zones: %w", err)
	}
	if ds.Buildings, err = queryAll(ctx, db, buildingsQuery, scanBuilding); err != nil {
		return Dataset{}, fmt.Errorf("failed to load buildings: %w", err)
	}
	if ds.Businesses, err = queryAll(ctx, db, businessesQuery, scanBusiness); err != nil {
		return Dataset{}, fmt.Errorf("failed to load businesses: %w", err)
	}
	if ds.Ads, err = queryAll(ctx, db, adsQuery, scanAd); err != nil {
		return Dataset{}, fmt.Errorf("failed to load ads: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func queryAll[T any](ctx context.Context, db Querier, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}

func scanZone(rows pgx.Rows) (models.StreetZone, error) {
	var z models.StreetZone
	err := rows.Scan(&z.ZoneID, &z.ZoneName, &z.ZoneDescription, &z.QRCodeURL, &z.Slug)
	return z, err
}

func scanBuilding(rows pgx.Rows) (models.Building, error) {
	var b models.Building
	err := rows.Scan(
		&b.BuildingID,
		&b.BuildingName,
		&b.BuildingAddress,
		&b.StreetZoneID,
		&b.Latitude,
		&b.Longitude,
		&b.QRCodeURL,
		&b.TotalFloors,
		&b.Slug,
		&b.IsUserSuggested,
	)
	return b, err
}

func scanBusiness(rows pgx.Rows) (models.Business, error) {
	var b models.Business
	err := rows.Scan(
		&b.BusinessID,
		&b.BusinessName,
		&b.BuildingID,
		&b.FloorNumber,
		&b.UnitNumber,
		&b.Categories,
		&b.Phone,
		&b.Email,
		&b.Website,
		&b.SocialLinks,
		&b.BusinessHours,
		&b.Description,
		&b.NavigationInstructions,
		&b.Photos,
		&b.IsClaimed,
		&b.IsVerified,
		&b.OwnerName,
		&b.OwnerEmail,
		&b.OwnerPhone,
	)
	return b, err
}

func scanAd(rows pgx.Rows) (models.Ad, error) {
	var a models.Ad
	var adType string
	err := rows.Scan(
		&a.AdID,
		&a.AdvertiserBusinessID,
		&adType,
		&a.AdContent.ImageURL,
		&a.AdContent.Text,
		&a.AdContent.CTA,
		&a.TargetLocation,
		&a.TargetCategory,
		&a.IsActive,
	)
	a.AdType = models.AdType(adType)
	return a, err
}
