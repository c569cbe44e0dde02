// Package consent validates public SMS opt-in submissions.
package consent

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

type Code string

const (
	CodeOK              Code = ""
	CodeInvalidRequest  Code = "INVALID_REQUEST"
	CodeConsentRequired Code = "CONSENT_REQUIRED"
)

const confirmation = "Opt-in received."

// Message is the user facing text for a code.
func (c Code) Message() string {
	switch c {
	case CodeInvalidRequest:
		return "Invalid request"
	case CodeConsentRequired:
		return "Consent is required"
	}
	return confirmation
}

type Result struct {
	OK          bool
	Code        Code
	PhoneNumber string
	HasPhone    bool
}

// Intake parses an opt-in body. Anything other than a JSON object whose
// consent field is the literal true is rejected.
func Intake(body []byte) Result {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return Result{Code: CodeInvalidRequest}
	}

	var agreed bool
	raw, ok := payload["consent"]
	if !ok || json.Unmarshal(raw, &agreed) != nil || !agreed {
		return Result{Code: CodeConsentRequired}
	}

	res := Result{OK: true}
	var phone *string
	if raw, ok := payload["phoneNumber"]; ok && json.Unmarshal(raw, &phone) == nil && phone != nil {
		res.PhoneNumber = strings.TrimSpace(*phone)
		res.HasPhone = true
	}
	return res
}

// Submission is an accepted opt-in as it would be stored for audit.
type Submission struct {
	PhoneNumber *string
	SourceIP    string
	UserAgent   string
	ReceivedAt  time.Time
}

// Sink persists accepted submissions. A nil Sink discards them.
type Sink interface {
	RecordOptIn(ctx context.Context, s Submission) error
}
