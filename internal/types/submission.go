// Package types provides type definitions for structured data used throughout the campaign-compliance system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Submission represents one campaign registration submission to be evaluated.
// Every field is optional: a missing field is "no evidence", not an error.
// The record is immutable for the duration of one evaluation.
type Submission struct {
	ID string `json:"id,omitempty"`

	// Brand identity
	BrandName      string `json:"brand_name,omitempty"`
	BrandWebsite   string `json:"brand_website,omitempty" validate:"omitempty,url"`
	LegalEntity    string `json:"legal_entity,omitempty"`
	Vertical       string `json:"vertical,omitempty"`
	WebsiteContent string `json:"website_content,omitempty"`

	// Campaign
	UseCase             string `json:"use_case,omitempty"`
	CampaignDescription string `json:"campaign_description,omitempty"`

	// Opt-in
	OptInDescription string   `json:"opt_in_description,omitempty"`
	OptInChannels    []string `json:"opt_in_channels,omitempty"`
	SampleMessages   []string `json:"sample_messages,omitempty"`

	// Contact
	SupportEmail string `json:"support_email,omitempty" validate:"omitempty,email"`
	SupportPhone string `json:"support_phone,omitempty"`

	// Business details
	CompanyEIN    string `json:"company_ein,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`

	// Legal pages
	PrivacyURL string `json:"privacy_url,omitempty" validate:"omitempty,url"`
	TermsURL   string `json:"terms_url,omitempty" validate:"omitempty,url"`

	// Flat list of every URL associated with the campaign (website plus
	// additional URLs supplied by the submitter).
	URLs []string `json:"urls,omitempty"`

	// Per-heading website sections used for violation attribution. Keys are
	// section labels, values are plain text. Populated by the scraper.
	WebsiteSections map[string]string `json:"website_sections,omitempty"`
}

// Validate validates the well-formedness of the optional fields that carry
// format constraints. It does not enforce presence; absence is a valid state.
func (s *Submission) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
