package auth

import "errors"

// CallbackPayload is the JSON shape delivered by the SSO redirect, either
// inline (base64-encoded in the "response" query parameter) or as the body
// returned by the backend code-exchange endpoint.
type CallbackPayload struct {
	Success bool         `json:"success"`
	Data    CallbackData `json:"data"`
}

// CallbackData carries the provider profile and an optional provider-issued
// identity token. The identity token is stored separately from the session
// and is never required for session validity.
type CallbackData struct {
	SalesPerson *Profile `json:"salesPerson"`
	IDToken     string   `json:"id_token,omitempty"`
}

var (
	// ErrPayloadNotSuccessful is returned when the provider reports failure.
	ErrPayloadNotSuccessful = errors.New("sso payload not successful")

	// ErrPayloadMissingProfile is returned when the payload lacks the nested profile.
	ErrPayloadMissingProfile = errors.New("sso payload missing profile")
)

// Validate checks the required shape: a true success flag, a data object,
// and a nested profile. Both callback branches apply the same check.
func (p *CallbackPayload) Validate() error {
	if p == nil || !p.Success {
		return ErrPayloadNotSuccessful
	}
	if p.Data.SalesPerson == nil {
		return ErrPayloadMissingProfile
	}
	return nil
}
