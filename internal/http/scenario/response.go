package scenario

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/castor/internal/lots"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

// scenarioResponse carries the project in the scenario file format.
type scenarioResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

type scenarioSummaryResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Participants int        `json:"participants"`
	DeedDate     string     `json:"deed_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type availableLotResponse struct {
	LotID                    int         `json:"lot_id"`
	Surface                  float64     `json:"surface"`
	Source                   lots.Source `json:"source"`
	SurfaceImposed           bool        `json:"surface_imposed"`
	FromParticipant          string      `json:"from_participant,omitempty"`
	TotalCoproSurface        float64     `json:"total_copro_surface,omitempty"`
	OriginalPrice            float64     `json:"original_price,omitempty"`
	OriginalNotaryFees       float64     `json:"original_notary_fees,omitempty"`
	OriginalConstructionCost float64     `json:"original_construction_cost,omitempty"`
}

type paybackResponse struct {
	Date        string               `json:"date"`
	Buyer       string               `json:"buyer"`
	Amount      float64              `json:"amount"`
	Type        timeline.PaybackType `json:"type"`
	Description string               `json:"description"`
}

type paybacksResponse struct {
	Items []paybackResponse `json:"items"`
	Total float64           `json:"total"`
}

func toResponse(sc *scenario.Scenario) (scenarioResponse, error) {
	document, err := scenario.Encode(scenario.Document{Project: sc.Project, Timestamp: sc.CreatedAt})
	if err != nil {
		return scenarioResponse{}, err
	}

	return scenarioResponse{
		ID:        sc.ID,
		Name:      sc.Name,
		Document:  document,
		CreatedAt: sc.CreatedAt,
		UpdatedAt: sc.UpdatedAt,
	}, nil
}

func toSummaryList(scenarios []*scenario.Scenario) []scenarioSummaryResponse {
	resp := make([]scenarioSummaryResponse, len(scenarios))
	for i, sc := range scenarios {
		resp[i] = scenarioSummaryResponse{
			ID:           sc.ID,
			Name:         sc.Name,
			Participants: len(sc.Project.Participants),
			DeedDate:     sc.Project.DeedDate.Format(time.DateOnly),
			CreatedAt:    sc.CreatedAt,
			UpdatedAt:    sc.UpdatedAt,
		}
	}

	return resp
}

func toAvailableList(available []lots.Available) []availableLotResponse {
	resp := make([]availableLotResponse, len(available))
	for i, a := range available {
		resp[i] = availableLotResponse{
			LotID:                    a.LotID,
			Surface:                  a.Surface,
			Source:                   a.Source,
			SurfaceImposed:           a.SurfaceImposed,
			FromParticipant:          a.FromParticipant,
			TotalCoproSurface:        a.TotalCoproSurface,
			OriginalPrice:            a.OriginalPrice,
			OriginalNotaryFees:       a.OriginalNotaryFees,
			OriginalConstructionCost: a.OriginalConstructionCost,
		}
	}

	return resp
}

func toPaybacksResponse(p timeline.Paybacks) paybacksResponse {
	resp := paybacksResponse{Items: make([]paybackResponse, len(p.Items)), Total: p.Total}
	for i, item := range p.Items {
		resp.Items[i] = paybackResponse{
			Date:        item.Date.Format(time.DateOnly),
			Buyer:       item.Buyer,
			Amount:      item.Amount,
			Type:        item.Type,
			Description: item.Description,
		}
	}

	return resp
}
