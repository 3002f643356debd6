package types

import (
	"github.com/go-playground/validator/v10"
)

// ExtractRequest represents the JSON body of an extraction request that
// references a previously stored resume instead of uploading bytes.
type ExtractRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid4"`
	ResumeURL string `json:"resume_url,omitempty" validate:"omitempty,url"`
	ResumeID  string `json:"resume_id,omitempty" validate:"omitempty,uuid4"`
	Query     string `json:"query,omitempty" validate:"omitempty,max=2000"`
	Length    string `json:"length,omitempty" validate:"omitempty,oneof=short medium descriptive"`
}

var validate = validator.New()

// Validate checks the request against its declared constraints.
func (r *ExtractRequest) Validate() error {
	return validate.Struct(r)
}
