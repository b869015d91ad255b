package calculator

import "github.com/MrJamesThe3rd/castor/internal/project"

// Honoraires are 15% of the CASCO, of which 30% fall in the first three years.
const (
	honorairesRate  = 0.15
	honorairesShare = 0.30
)

// Recurring holds the yearly overhead lines.
type Recurring struct {
	PrecompteImmobilier float64
	Comptable           float64
	PodioAbonnement     float64
	AssuranceBatiment   float64
	FraisReservation    float64
	Imprevus            float64
	Total               float64
}

// OneTime holds the overhead paid once at signing.
type OneTime struct {
	FraisDossierCredit       float64
	FraisGestionCredit       float64
	FraisNotaireBasePartagee float64
	Total                    float64
}

// FraisGenerauxBreakdown details the three-year overhead.
type FraisGenerauxBreakdown struct {
	TotalCasco           float64 // Excluding VAT
	HonorairesTotal      float64
	HonorairesYearly     float64
	RecurringYearly      Recurring
	RecurringTotal3Years float64
	OneTime              OneTime
	Total                float64
}

// FraisGeneraux computes the overhead from the CASCO of the given
// participants and of the common works. Participants without a unit or a
// surface are skipped.
func FraisGeneraux(participants []project.Participant, params project.Params) FraisGenerauxBreakdown {
	var casco float64
	for _, p := range participants {
		if p.UnitID == 0 || p.Surface <= 0 {
			continue
		}

		sqm := p.Surface
		if p.CascoSqm != nil {
			sqm = *p.CascoSqm
		}

		casco += sqm * params.GlobalCascoPerM2 * float64(p.Units())
	}

	casco += params.TravauxCommunsCasco()

	recurring := Recurring{
		PrecompteImmobilier: 388.38,
		Comptable:           1000,
		PodioAbonnement:     600,
		AssuranceBatiment:   2000,
		FraisReservation:    2000,
		Imprevus:            2000,
	}
	recurring.Total = recurring.PrecompteImmobilier + recurring.Comptable + recurring.PodioAbonnement +
		recurring.AssuranceBatiment + recurring.FraisReservation + recurring.Imprevus

	oneTime := OneTime{
		FraisDossierCredit:       500,
		FraisGestionCredit:       45,
		FraisNotaireBasePartagee: 5000,
	}
	oneTime.Total = oneTime.FraisDossierCredit + oneTime.FraisGestionCredit + oneTime.FraisNotaireBasePartagee

	honoraires := casco * honorairesRate * honorairesShare

	b := FraisGenerauxBreakdown{
		TotalCasco:           casco,
		HonorairesTotal:      honoraires,
		HonorairesYearly:     honoraires / 3,
		RecurringYearly:      recurring,
		RecurringTotal3Years: recurring.Total * 3,
		OneTime:              oneTime,
	}
	b.Total = b.HonorairesTotal + b.RecurringTotal3Years + oneTime.Total

	return b
}

// Year1 is paid by the founders at signing.
func (b FraisGenerauxBreakdown) Year1() float64 {
	return b.OneTime.Total + b.RecurringYearly.Total + b.HonorairesYearly
}

// Year2 is also the Year 3 amount.
func (b FraisGenerauxBreakdown) Year2() float64 {
	return b.RecurringYearly.Total + b.HonorairesYearly
}
