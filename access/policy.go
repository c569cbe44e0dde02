// Package access decides which area of the application a request may enter.
//
// Evaluate is pure: it only looks at the Facts it is given and returns a
// Decision. Turning a denial into an HTTP response or a redirect is the
// caller's job. Facts are loaded fresh for every request; nothing here is
// cached between calls.
package access

type Zone string

const (
	ZoneOnboarding Zone = "onboarding"
	ZoneDashboard  Zone = "dashboard"
	ZoneAdmin      Zone = "admin"
)

type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNotAuthenticated   Reason = "NOT_AUTHENTICATED"
	ReasonNotAdmin           Reason = "NOT_ADMIN"
	ReasonOnboardingRequired Reason = "ONBOARDING_REQUIRED"
)

// Destination is where a caller should be sent.
type Destination string

const (
	DestinationNone       Destination = ""
	DestinationSignIn     Destination = "sign-in"
	DestinationOnboarding Destination = "onboarding"
	DestinationDashboard  Destination = "dashboard"
)

// BusinessState is the part of a business record the policy reads.
type BusinessState struct {
	OnboardingComplete bool
}

// Facts describe the caller at request time. A non-nil BusinessID with a nil
// Business means the referenced record does not exist.
type Facts struct {
	Authenticated bool
	IsAdmin       bool
	BusinessID    *int64
	Business      *BusinessState
}

type Decision struct {
	Allowed  bool        `json:"allowed"`
	Reason   Reason      `json:"reason,omitempty"`
	Redirect Destination `json:"redirect,omitempty"`
}

var allow = Decision{Allowed: true}

func deny(r Reason, to Destination) Decision {
	return Decision{Allowed: false, Reason: r, Redirect: to}
}

// Evaluate returns the decision for a request targeting zone.
//
// The onboarding check is deliberately weaker than the dashboard check: a user
// who is still onboarding must be able to reach onboarding, otherwise the two
// zones would redirect to each other forever.
func Evaluate(zone Zone, f Facts) Decision {
	if !f.Authenticated {
		return deny(ReasonNotAuthenticated, DestinationSignIn)
	}
	switch zone {
	case ZoneOnboarding:
		return allow
	case ZoneDashboard:
		if f.BusinessID == nil || f.Business == nil || !f.Business.OnboardingComplete {
			return deny(ReasonOnboardingRequired, DestinationOnboarding)
		}
		return allow
	case ZoneAdmin:
		if !f.IsAdmin {
			return deny(ReasonNotAdmin, DestinationSignIn)
		}
		return allow
	}
	// unknown zones fail closed
	return deny(ReasonNotAuthenticated, DestinationSignIn)
}

// Landing picks the area a caller should be sent to after signing in.
func Landing(f Facts) Destination {
	if !f.Authenticated {
		return DestinationSignIn
	}
	if Evaluate(ZoneDashboard, f).Allowed {
		return DestinationDashboard
	}
	return DestinationOnboarding
}
