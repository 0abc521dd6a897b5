// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	UserID string   `validate:"required"`
	Level  string   `validate:"required,oneof=junior mid senior expert"`
	Rate   float64  `validate:"gt=0"`
	Limit  int      `validate:"omitempty,min=1,max=50"`
	Skills []string `validate:"omitempty,dive,required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantErr    bool
		wantFields []string
	}{
		{
			name: "valid request",
			req:  sampleRequest{UserID: "u1", Level: "mid", Rate: 50, Limit: 10},
		},
		{
			name:       "missing required field",
			req:        sampleRequest{Level: "mid", Rate: 50},
			wantErr:    true,
			wantFields: []string{"UserID"},
		},
		{
			name:       "invalid enum value",
			req:        sampleRequest{UserID: "u1", Level: "wizard", Rate: 50},
			wantErr:    true,
			wantFields: []string{"Level"},
		},
		{
			name:       "limit above maximum",
			req:        sampleRequest{UserID: "u1", Level: "mid", Rate: 50, Limit: 100},
			wantErr:    true,
			wantFields: []string{"Limit"},
		},
		{
			name:       "multiple failures reported together",
			req:        sampleRequest{Rate: -1},
			wantErr:    true,
			wantFields: []string{"UserID", "Level", "Rate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", verr, tt.wantErr)
			}
			if verr == nil {
				return
			}
			if len(verr.Fields()) != len(tt.wantFields) {
				t.Fatalf("got %d field errors, want %d: %v", len(verr.Fields()), len(tt.wantFields), verr)
			}
			for i, want := range tt.wantFields {
				if got := verr.Fields()[i].Field; got != want {
					t.Errorf("field[%d] = %s, want %s", i, got, want)
				}
			}
		})
	}
}

func TestTranslatedMessages(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{UserID: "u1", Level: "wizard", Rate: 50})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	msg := verr.Error()
	if !strings.Contains(msg, "must be one of") {
		t.Errorf("Error() = %q, want oneof message", msg)
	}
}

func TestDetailsShape(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	details := verr.Details()
	if _, ok := details["fields"]; !ok {
		t.Errorf("Details() missing fields key: %v", details)
	}
}
