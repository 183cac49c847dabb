package core

import "errors"

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrContractorNotFound = errors.New("contractor not found")
	ErrOutsideGeofence    = errors.New("location is outside the job site geofence")
	ErrNoOpenSession      = errors.New("no open work session")
)
