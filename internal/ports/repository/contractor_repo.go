package repository

import (
	"context"
	"database/sql"

	"crewclock.service/internal/core/model"
)

// ContractorRepository contract
type ContractorRepository interface {
	GetPayRateProfile(ctx context.Context, contractorID string) (*model.PayRateProfile, error)
}

// PostgresContractorRepository reads contractor pay data. This service never
// writes to the contractors table.
type PostgresContractorRepository struct {
	DB *sql.DB
}

// NewContractorRepository create new instance
func NewContractorRepository(db *sql.DB) ContractorRepository {
	return &PostgresContractorRepository{DB: db}
}

// GetPayRateProfile returns the hourly rate and CIS registration status for a
// contractor, or nil when the contractor is unknown.
func (r *PostgresContractorRepository) GetPayRateProfile(ctx context.Context, contractorID string) (*model.PayRateProfile, error) {
	profile := &model.PayRateProfile{ContractorID: contractorID}

	query := `SELECT hourly_rate, cis_registered, email
              FROM contractors
              WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, contractorID).Scan(&profile.HourlyRate, &profile.CISRegistered, &profile.Email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}
