package scenario_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	scenarioHandler "github.com/MrJamesThe3rd/castor/internal/http/scenario"
	"github.com/MrJamesThe3rd/castor/internal/portage"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
)

var deed = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func sampleProject() project.Project {
	return project.Project{
		DeedDate: deed,
		Formula:  portage.DefaultFormula(),
		Params:   project.Params{TotalPurchase: 400000, GlobalCascoPerM2: 1000, MaxTotalLots: 10},
		Participants: []project.Participant{
			{
				Name: "Alice", IsFounder: true, UnitID: 1, Surface: 100,
				CapitalApporte: 50000, RegistrationFeesRate: 12.5, InterestRate: 4, DurationYears: 25,
				Lots: []project.Lot{{ID: 1, Surface: 100, UnitID: 1, AcquiredDate: deed}},
			},
			{
				Name: "Bob", IsFounder: true, UnitID: 2, Surface: 120,
				CapitalApporte: 60000, RegistrationFeesRate: 3, InterestRate: 3.5, DurationYears: 20,
			},
		},
	}
}

func newRouter(t *testing.T) (http.Handler, *scenario.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := scenario.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/scenarios", scenarioHandler.NewHandler(scenario.NewService(repo), 1<<20).Routes)

	return r, repo
}

func serve(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		target     string
		setupMock  func(m *scenario.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Success",
			target: "/scenarios/" + id.String(),
			setupMock: func(m *scenario.MockRepository) {
				m.EXPECT().
					GetScenario(gomock.Any(), id).
					Return(&scenario.Scenario{ID: id, Name: "Base", Project: sampleProject(), CreatedAt: deed}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "InvalidID",
			target:     "/scenarios/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "NotFound",
			target: "/scenarios/" + id.String(),
			setupMock: func(m *scenario.MockRepository) {
				m.EXPECT().GetScenario(gomock.Any(), id).Return(nil, scenario.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "StoreFailure",
			target: "/scenarios/" + id.String(),
			setupMock: func(m *scenario.MockRepository) {
				m.EXPECT().GetScenario(gomock.Any(), id).Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := serve(h, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Get_EmbedsDocument(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	repo.EXPECT().
		GetScenario(gomock.Any(), id).
		Return(&scenario.Scenario{ID: id, Name: "Base", Project: sampleProject(), CreatedAt: deed}, nil)

	rec := serve(h, http.MethodGet, "/scenarios/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID       uuid.UUID       `json:"id"`
		Name     string          `json:"name"`
		Document json.RawMessage `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "Base", resp.Name)

	doc, err := scenario.Decode(resp.Document)
	require.NoError(t, err)
	assert.Len(t, doc.Project.Participants, 2)
	assert.Equal(t, deed, doc.Project.DeedDate)
}

func TestHandler_Create(t *testing.T) {
	document, err := scenario.Encode(scenario.Document{Project: sampleProject()})
	require.NoError(t, err)

	duplicated := sampleProject()
	duplicated.Participants[1].Name = "Alice"

	invalid, err := scenario.Encode(scenario.Document{Project: duplicated})
	require.NoError(t, err)

	body := func(name string, doc []byte) []byte {
		b, err := json.Marshal(map[string]any{"name": name, "document": json.RawMessage(doc)})
		require.NoError(t, err)

		return b
	}

	type testCase struct {
		name       string
		body       []byte
		setupMock  func(m *scenario.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Success",
			body: body("Base", document),
			setupMock: func(m *scenario.MockRepository) {
				m.EXPECT().
					CreateScenario(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *scenario.Scenario) error {
						s.ID = uuid.New()
						s.CreatedAt = time.Now()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingName",
			body:       body("", document),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MalformedBody",
			body:       []byte(`{"name":`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "InvalidProject",
			body:       body("Broken", invalid),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "NoVersion",
			body:       body("Old", []byte(`{"participants":[{"name":"A"}],"projectParams":{}}`)),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := serve(h, http.MethodPost, "/scenarios/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Import(t *testing.T) {
	h, repo := newRouter(t)

	document, err := scenario.Encode(scenario.Document{Project: sampleProject()})
	require.NoError(t, err)

	var stored *scenario.Scenario
	repo.EXPECT().
		CreateScenario(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *scenario.Scenario) error {
			s.ID = uuid.New()
			stored = s
			return nil
		})

	req := httptest.NewRequest(http.MethodPost, "/scenarios/import?name=Uploaded", bytes.NewReader(append([]byte("\xEF\xBB\xBF"), document...)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, stored)
	assert.Equal(t, "Uploaded", stored.Name)
	assert.Len(t, stored.Project.Participants, 2)
}

func TestHandler_Import_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := scenario.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/scenarios", scenarioHandler.NewHandler(scenario.NewService(repo), 16).Routes)

	req := httptest.NewRequest(http.MethodPost, "/scenarios/import", strings.NewReader(`{"participants":[],"projectParams":{}}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	repo.EXPECT().DeleteScenario(gomock.Any(), id).Return(nil)

	rec := serve(h, http.MethodDelete, "/scenarios/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_Projection(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	repo.EXPECT().
		GetScenario(gomock.Any(), id).
		Return(&scenario.Scenario{ID: id, Name: "Base", Project: sampleProject()}, nil)

	rec := serve(h, http.MethodGet, "/scenarios/"+id.String()+"/projection", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))

	assert.Contains(t, raw, "results")
	assert.Contains(t, raw, "timeline")
	assert.Contains(t, raw, "frais_generaux")
}

func TestHandler_Export(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	repo.EXPECT().
		GetScenario(gomock.Any(), id).
		Return(&scenario.Scenario{ID: id, Name: "Base", Project: sampleProject()}, nil)

	rec := serve(h, http.MethodGet, "/scenarios/"+id.String()+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="scenario_`)

	doc, err := scenario.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, doc.Project.Participants, 2)
}

func TestHandler_AddPortageLot_NotAFounder(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	repo.EXPECT().
		GetScenario(gomock.Any(), id).
		Return(&scenario.Scenario{ID: id, Name: "Base", Project: sampleProject()}, nil)

	rec := serve(h, http.MethodPost, "/scenarios/"+id.String()+"/lots/portage", []byte(`{"founder":"Zoe","surface":30}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_AvailableLots(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	p := sampleProject()
	p.CoproLots = []project.CoproLot{{ID: 10, Surface: 60, AcquiredDate: deed}}

	repo.EXPECT().
		GetScenario(gomock.Any(), id).
		Return(&scenario.Scenario{ID: id, Name: "Base", Project: p}, nil)

	rec := serve(h, http.MethodGet, "/scenarios/"+id.String()+"/lots/available", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Len(t, got, 1)
	assert.EqualValues(t, 10, got[0]["lot_id"])
	assert.Equal(t, "COPRO", got[0]["source"])
}

func TestHandler_Update_RepricesMovedBuyer(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	portageProject := func(entry time.Time) project.Project {
		p := sampleProject()
		p.Participants[0].Surface = 150
		p.Participants[0].Lots = append(p.Participants[0].Lots, project.Lot{
			ID: 2, Surface: 50, UnitID: 1, IsPortage: true, AcquiredDate: deed, OriginalPrice: 80000, OriginalNotaryFees: 10000,
		})
		p.Participants = append(p.Participants, project.Participant{
			Name: "Carla", Surface: 50, EntryDate: &entry,
			Purchase: project.PortagePurchase{Seller: "Alice", Lot: 2, PurchasePrice: new(120000.0)},
		})
		p.Participants = project.SyncSoldDates(p.Participants, deed)

		return p
	}

	stored := portageProject(time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))
	repo.EXPECT().
		GetScenario(gomock.Any(), id).
		Return(&scenario.Scenario{ID: id, Name: "Base", Project: stored, CreatedAt: deed}, nil)

	var saved *scenario.Scenario
	repo.EXPECT().
		UpdateScenario(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *scenario.Scenario) error {
			saved = s
			return nil
		})

	document, err := scenario.Encode(scenario.Document{Project: portageProject(time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{"name": "Moved", "document": json.RawMessage(document)})
	require.NoError(t, err)

	rec := serve(h, http.MethodPut, "/scenarios/"+id.String(), body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotNil(t, saved)
	assert.Equal(t, "Moved", saved.Name)

	purchase, ok := saved.Project.Participants[2].PortageFrom()
	require.True(t, ok)
	require.NotNil(t, purchase.PurchasePrice)
	assert.NotEqual(t, 120000.0, *purchase.PurchasePrice)
}

func TestHandler_RepricePortage_NotFound(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	repo.EXPECT().GetScenario(gomock.Any(), id).Return(nil, scenario.ErrNotFound)

	rec := serve(h, http.MethodPost, "/scenarios/"+id.String()+"/portage/reprice", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
