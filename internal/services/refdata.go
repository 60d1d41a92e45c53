package services

import (
	"errors"
	"fmt"

	"github.com/teamup/backend/internal/models"
	"gorm.io/gorm"
)

// RefDataService resolves region/locality ids against the seeded reference
// tables. The social core treats it as an external collaborator: lookups
// happen before the first write of any atomic step.
type RefDataService struct {
	DB *gorm.DB
}

func NewRefDataService(db *gorm.DB) *RefDataService {
	return &RefDataService{DB: db}
}

func (s *RefDataService) Lookup(regionID uint8, localityID uint16) (*models.Locality, error) {
	var locality models.Locality
	err := s.DB.First(&locality, "id = ? AND region_id = ?", localityID, regionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("locality %d in region %d: %w", localityID, regionID, ErrNotFound)
		}
		return nil, err
	}
	return &locality, nil
}

func (s *RefDataService) Regions() ([]models.Region, error) {
	var regions []models.Region
	if err := s.DB.Order("id").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

func (s *RefDataService) Localities(regionID uint8) ([]models.Locality, error) {
	var localities []models.Locality
	if err := s.DB.Order("id").Find(&localities, "region_id = ?", regionID).Error; err != nil {
		return nil, err
	}
	return localities, nil
}
