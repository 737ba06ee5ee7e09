package model

import (
	"encoding/json"
	"time"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// DefaultCoverageRadiusKm applies when a provider never set a radius.
const DefaultCoverageRadiusKm = 50.0

type Provider struct {
	ID               string
	UserID           string
	Name             string
	Latitude         *float64
	Longitude        *float64
	IsAvailable      bool
	ApprovalStatus   string
	CoverageRadiusKm float64
	ServiceTypes     ServiceTypes
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastLocationAt   *time.Time
}

// Matchable reports whether the provider may appear in match results:
// approved, available and with a known location.
func (p Provider) Matchable() bool {
	return p.ApprovalStatus == ApprovalApproved &&
		p.IsAvailable &&
		p.Latitude != nil && p.Longitude != nil
}

// ProviderMatch pairs a matchable provider with its distance from a
// query point. DistanceKm is rounded to two decimals for display.
type ProviderMatch struct {
	Provider   Provider
	DistanceKm float64
}

// ProviderStats are the dashboard aggregates over a provider's requests.
type ProviderStats struct {
	TotalCompleted  int
	PendingRequests int
	ActiveRequests  int
}

// ServiceTypes is the set of service kinds a provider offers (ordered as
// the provider listed them). It crosses the storage boundary as a JSON
// array exactly once, in the repository; nothing else re-parses it.
type ServiceTypes []string

func (st ServiceTypes) Encode() (string, error) {
	if st == nil {
		st = ServiceTypes{}
	}
	b, err := json.Marshal([]string(st))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeServiceTypes(raw string) (ServiceTypes, error) {
	if raw == "" {
		return ServiceTypes{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return ServiceTypes(out), nil
}

// Contains reports whether the provider offers the given service type.
func (st ServiceTypes) Contains(serviceType string) bool {
	for _, s := range st {
		if s == serviceType {
			return true
		}
	}
	return false
}
