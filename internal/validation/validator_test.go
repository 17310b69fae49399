// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package validation

import (
	"testing"
)

type sampleRequest struct {
	Limit   int    `query:"limit" validate:"min=1,max=500"`
	Name    string `query:"name" validate:"max=10"`
	Code    string `query:"countrycode" validate:"omitempty,countrycode"`
	Region  string `json:"region" validate:"required,region"`
	Range   string `form:"range" validate:"omitempty,oneof=1d 7d 30d all"`
	Ignored string `json:"-"`
}

func validSample() sampleRequest {
	return sampleRequest{Limit: 10, Name: "jazz", Code: "de", Region: "South_America", Range: "7d"}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*sampleRequest)
		field   string
		message string
	}{
		{"valid", func(*sampleRequest) {}, "", ""},
		{"limit too small", func(r *sampleRequest) { r.Limit = 0 }, "limit", "limit must be at least 1"},
		{"limit too large", func(r *sampleRequest) { r.Limit = 501 }, "limit", "limit must be at most 500"},
		{"name too long", func(r *sampleRequest) { r.Name = "abcdefghijk" }, "name", "name must be at most 10 characters"},
		{"bad country code", func(r *sampleRequest) { r.Code = "DEU" }, "countrycode", "countrycode must be a two-letter country code"},
		{"digit country code", func(r *sampleRequest) { r.Code = "D1" }, "countrycode", "countrycode must be a two-letter country code"},
		{"missing region", func(r *sampleRequest) { r.Region = "" }, "region", "region is required"},
		{"bad region", func(r *sampleRequest) { r.Region = "../etc" }, "region", "region is not a valid region name"},
		{"bad range", func(r *sampleRequest) { r.Range = "1y" }, "range", "range must be one of: 1d 7d 30d all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validSample()
			tt.mutate(&req)

			verr := ValidateStruct(&req)
			if tt.field == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil || len(verr.Fields) != 1 {
				t.Fatalf("ValidateStruct() = %v, want one failure", verr)
			}
			if got := verr.Fields[0]; got.Field != tt.field || got.Message != tt.message {
				t.Errorf("failure = %+v, want field %q message %q", got, tt.field, tt.message)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	req := validSample()
	req.Limit = 0
	req.Region = ""
	apiErr := ValidateStruct(&req).ToAPIError()
	if apiErr.Code != CodeValidationError {
		t.Errorf("Code = %q", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("Details = %#v", apiErr.Details)
	}

	single := (&RequestValidationError{Fields: []FieldError{{Field: "limit", Tag: "min", Message: "m"}}}).ToAPIError()
	if single.Message != "m" || single.Details["field"] != "limit" {
		t.Errorf("single = %+v", single)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty message = %q", empty.Message)
	}
}
