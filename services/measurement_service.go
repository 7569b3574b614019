package services

import (
	"github.com/atelier-studio/atelier-api/models"
	"gorm.io/gorm"
)

// MeasurementService creates and lists measurement records. Records are
// immutable once created; a correction is a new record with a new label.
type MeasurementService struct {
	db *gorm.DB
}

// NewMeasurementService creates a measurement service backed by db
func NewMeasurementService(db *gorm.DB) *MeasurementService {
	return &MeasurementService{db: db}
}

// Create validates and stores a measurement record for an existing client
func (s *MeasurementService) Create(measurement *models.Measurement) (*models.Measurement, error) {
	if measurement.Label == "" {
		return nil, &ValidationError{Field: "label", Message: "label is required"}
	}
	if err := measurement.Validate(); err != nil {
		return nil, &ValidationError{Field: "measurements", Message: err.Error()}
	}

	var client models.Client
	if err := s.db.First(&client, "id = ?", measurement.ClientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("client", measurement.ClientID)
		}
		return nil, err
	}

	if err := s.db.Create(measurement).Error; err != nil {
		return nil, err
	}
	return measurement, nil
}

// ListForClient returns a client's measurement records, newest first
func (s *MeasurementService) ListForClient(clientID string) ([]models.Measurement, error) {
	var measurements []models.Measurement
	err := s.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&measurements).Error
	return measurements, err
}

// Get loads a single measurement record
func (s *MeasurementService) Get(id string) (*models.Measurement, error) {
	var measurement models.Measurement
	if err := s.db.First(&measurement, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("measurement", id)
		}
		return nil, err
	}
	return &measurement, nil
}
