package calculator

type SignaturePhase struct {
	PurchaseShare    float64
	RegistrationFees float64
	NotaryFees       float64
	Total            float64
}

type ConstructionPhase struct {
	Casco          float64
	TravauxCommuns float64
	Commun         float64
	Total          float64
}

type EmmenagementPhase struct {
	Parachevements float64
	Total          float64
}

// PhaseCosts groups a participant's costs by when they fall due.
type PhaseCosts struct {
	Signature    SignaturePhase
	Construction ConstructionPhase
	Emmenagement EmmenagementPhase
	GrandTotal   float64
}

func CalculatePhaseCosts(r ParticipantResult) PhaseCosts {
	signature := SignaturePhase{
		PurchaseShare:    r.PurchaseShare,
		RegistrationFees: r.DroitEnregistrements,
		NotaryFees:       r.FraisNotaireFixe,
	}
	signature.Total = signature.PurchaseShare + signature.RegistrationFees + signature.NotaryFees

	construction := ConstructionPhase{
		Casco:          r.Casco,
		TravauxCommuns: r.TravauxCommunsPerUnit,
		Commun:         r.SharedCosts,
	}
	construction.Total = construction.Casco + construction.TravauxCommuns + construction.Commun

	emmenagement := EmmenagementPhase{
		Parachevements: r.Parachevements,
		Total:          r.Parachevements,
	}

	return PhaseCosts{
		Signature:    signature,
		Construction: construction,
		Emmenagement: emmenagement,
		GrandTotal:   signature.Total + construction.Total + emmenagement.Total,
	}
}
