package projection_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/castor/internal/http/projection"
	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
)

func sample() project.Project {
	deed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entry := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	price := 150000.0

	return project.Project{
		DeedDate: deed,
		Formula:  portage.DefaultFormula(),
		Params:   project.Params{TotalPurchase: 400000, GlobalCascoPerM2: 1000, MaxTotalLots: 10},
		Participants: []project.Participant{
			{Name: "A", IsFounder: true, Surface: 80, CapitalApporte: 50000, InterestRate: 4, DurationYears: 25},
			{Name: "B", IsFounder: true, Surface: 120, CapitalApporte: 50000, InterestRate: 4, DurationYears: 25},
			{Name: "N", Surface: 50, EntryDate: &entry, Purchase: project.CoproPurchase{Lot: 10, PurchasePrice: &price}},
		},
	}
}

func encode(t *testing.T, p project.Project) []byte {
	t.Helper()

	data, err := scenario.Encode(scenario.Document{Project: p})
	require.NoError(t, err)

	return data
}

func document(t *testing.T) []byte {
	t.Helper()

	return encode(t, sample())
}

func TestHandler_Project(t *testing.T) {
	type testCase struct {
		name       string
		body       []byte
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "Success",
			body:       document(t),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Malformed",
			body:       []byte(`{"version": 2,`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "OldFormat",
			body:       []byte(`{"participants":[{"name":"A"}],"projectParams":{}}`),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "DuplicateNames",
			body: encode(t, func() project.Project {
				p := sample()
				p.Participants[1].Name = "A"
				return p
			}()),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "UnusableSecondLoan",
			body: encode(t, func() project.Project {
				p := sample()
				p.Participants[0].UseTwoLoans = true
				p.Participants[0].DurationYears = 2
				return p
			}()),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "MissingParticipants",
			body:       []byte(`{"version":2,"releaseVersion":"2.9.1","projectParams":{}}`),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Route("/projections", projection.NewHandler(1<<20).Routes)

			req := httptest.NewRequest(http.MethodPost, "/projections/", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Project_Body(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/projections", projection.NewHandler(1<<20).Routes)

	req := httptest.NewRequest(http.MethodPost, "/projections/", bytes.NewReader(document(t)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results struct {
			Participants []map[string]any `json:"participants"`
		} `json:"results"`
		Timeline struct {
			Dates []string `json:"dates"`
		} `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Results.Participants, 3)
	assert.Equal(t, []string{"2026-02-01", "2027-02-01"}, resp.Timeline.Dates)
}
