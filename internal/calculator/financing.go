package calculator

import (
	"math"

	"github.com/MrJamesThe3rd/castor/internal/project"
)

// MonthlyPayment is the annuity payment of a loan repaid monthly over
// durationYears. A zero rate spreads the principal evenly.
func MonthlyPayment(loanAmount, annualInterestRate float64, durationYears int) float64 {
	months := float64(durationYears * 12)
	if loanAmount <= 0 || months <= 0 {
		return 0
	}

	rate := annualInterestRate / 100 / 12
	if rate == 0 {
		return loanAmount / months
	}

	growth := math.Pow(1+rate, months)

	return loanAmount * rate * growth / (growth - 1)
}

// TotalInterest is what the borrower pays above the principal.
func TotalInterest(monthlyPayment float64, durationYears int, loanAmount float64) float64 {
	return monthlyPayment*float64(durationYears*12) - loanAmount
}

// FinancingRatio is the percentage of totalCost covered by the loan.
func FinancingRatio(loanAmount, totalCost float64) float64 {
	if totalCost <= 0 {
		return 0
	}

	return loanAmount / totalCost * 100
}

// TwoLoans splits financing between signature costs (loan 1) and
// construction costs (loan 2). Loan 2 starts later and ends with loan 1.
type TwoLoans struct {
	SignatureCosts    float64
	ConstructionCosts float64

	Loan1Amount         float64
	Loan1MonthlyPayment float64
	Loan1Interest       float64

	Loan2Amount         float64
	Loan2DurationYears  int
	Loan2MonthlyPayment float64
	Loan2Interest       float64

	TotalInterest float64
}

// TwoLoanFinancing computes the phase-split financing of a participant.
// sharedCosts is the participant's share of the common costs.
func TwoLoanFinancing(
	purchaseShare, droitEnregistrements, fraisNotaireFixe, sharedCosts, personalRenovationCost float64,
	p project.Participant,
) TwoLoans {
	signature := purchaseShare + droitEnregistrements + fraisNotaireFixe + sharedCosts

	construction := personalRenovationCost
	if p.Loan2RenovationAmount != nil {
		construction = *p.Loan2RenovationAmount
	}

	l := TwoLoans{
		SignatureCosts:     signature,
		ConstructionCosts:  construction,
		Loan1Amount:        math.Max(0, signature-p.CapitalApporte),
		Loan2Amount:        math.Max(0, construction-p.CapitalForLoan2),
		Loan2DurationYears: p.DurationYears - p.Loan2Delay(),
	}

	l.Loan1MonthlyPayment = MonthlyPayment(l.Loan1Amount, p.InterestRate, p.DurationYears)
	l.Loan2MonthlyPayment = MonthlyPayment(l.Loan2Amount, p.InterestRate, l.Loan2DurationYears)
	l.Loan1Interest = TotalInterest(l.Loan1MonthlyPayment, p.DurationYears, l.Loan1Amount)
	l.Loan2Interest = TotalInterest(l.Loan2MonthlyPayment, l.Loan2DurationYears, l.Loan2Amount)
	l.TotalInterest = l.Loan1Interest + l.Loan2Interest

	return l
}
