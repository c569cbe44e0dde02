// Package setup decides whether a business configuration collected during
// onboarding can be provisioned automatically or needs a manual review.
package setup

import "ringback/backend/industry"

// MaxAutoServiceAreas is the largest service area count that still qualifies
// for automatic provisioning.
const MaxAutoServiceAreas = 3

type Reason string

const (
	ReasonMultiLocation       Reason = "MULTI_LOCATION"
	ReasonCustomScript        Reason = "CUSTOM_SCRIPT"
	ReasonTooManyServiceAreas Reason = "TOO_MANY_SERVICE_AREAS"
	ReasonAutomatic           Reason = "AUTOMATIC"
)

// Draft is a prospective business configuration. The zero value of every
// field is its default: no industry, no service areas, template script,
// single location.
type Draft struct {
	Industry      industry.Code
	ServiceAreas  []string
	CustomScript  bool
	MultiLocation bool
}

type Verdict struct {
	Manual bool   `json:"requires_manual_setup"`
	Reason Reason `json:"reason"`
}

// Classify reports the first rule that sends the draft to manual setup.
// Service areas are counted as given, duplicates included.
func Classify(d Draft) Verdict {
	switch {
	case d.MultiLocation:
		return Verdict{Manual: true, Reason: ReasonMultiLocation}
	case d.CustomScript:
		return Verdict{Manual: true, Reason: ReasonCustomScript}
	case len(d.ServiceAreas) > MaxAutoServiceAreas:
		return Verdict{Manual: true, Reason: ReasonTooManyServiceAreas}
	}
	return Verdict{Manual: false, Reason: ReasonAutomatic}
}

func RequiresManualSetup(d Draft) bool {
	return Classify(d).Manual
}
