package services

import (
	"math"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/domain/model"
	"road-assist/internal/assist-service/core/myerrors"
)

const MaxDescriptionLen = 500

func validateHelpRequest(req dto.HelpRequestDto) error {
	if req.UserId == nil || *req.UserId == "" {
		return myerrors.Validationf("user_id is required")
	}
	if req.ProviderId == nil || *req.ProviderId == "" {
		return myerrors.Validationf("provider_id is required")
	}
	if err := validateLatLng(req.Latitude, req.Longitude); err != nil {
		return err
	}
	if req.IssueType == nil || *req.IssueType == "" {
		return myerrors.Validationf("issue_type is required")
	}
	if req.Description != nil && len(*req.Description) > MaxDescriptionLen {
		return myerrors.Validationf("description exceeds %d characters", MaxDescriptionLen)
	}
	return nil
}

// ValidateMatchRequest is called by the HTTP handler before matching;
// the matcher itself takes already-validated coordinates.
func ValidateMatchRequest(req dto.MatchRequestDto) error {
	return validateLatLng(req.Latitude, req.Longitude)
}

func validateLatLng(lat, lng *float64) error {
	if lat == nil || lng == nil {
		return myerrors.Validationf("latitude and longitude are required")
	}
	if math.Abs(*lat) > 90 {
		return myerrors.Validationf("invalid latitude, must be in [-90, 90]")
	}
	if math.Abs(*lng) > 180 {
		return myerrors.Validationf("invalid longitude, must be in [-180, 180]")
	}
	return nil
}

func validateStatusFilter(status string) error {
	if status == "" {
		return nil
	}
	switch status {
	case model.StatusPending, model.StatusAccepted, model.StatusDeclined,
		model.StatusCompleted, model.StatusCancelled:
		return nil
	}
	return myerrors.Validationf("unknown status %q", status)
}
