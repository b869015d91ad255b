package project

// Purchase describes how a non-founder acquired their lot. It is either a
// PortagePurchase or a CoproPurchase.
type Purchase interface {
	LotID() int
	// Price returns the stored purchase price, if any.
	Price() (float64, bool)

	purchase()
}

// PriceBreakdown records how a stored purchase price was composed.
type PriceBreakdown struct {
	BasePrice            float64
	Indexation           float64
	CarryingCostRecovery float64
	FeesRecovery         float64
	Renovations          float64
}

// PortagePurchase is a lot bought from another participant.
type PortagePurchase struct {
	Seller        string
	Lot           int
	PurchasePrice *float64
	Breakdown     *PriceBreakdown
}

func (p PortagePurchase) LotID() int { return p.Lot }

func (p PortagePurchase) Price() (float64, bool) {
	if p.PurchasePrice == nil {
		return 0, false
	}

	return *p.PurchasePrice, true
}

func (PortagePurchase) purchase() {}

// CoproPurchase is a lot bought from the copropriété.
type CoproPurchase struct {
	Lot           int
	PurchasePrice *float64
}

func (p CoproPurchase) LotID() int { return p.Lot }

func (p CoproPurchase) Price() (float64, bool) {
	if p.PurchasePrice == nil {
		return 0, false
	}

	return *p.PurchasePrice, true
}

func (CoproPurchase) purchase() {}

// NewPurchase resolves a seller name into the matching variant.
func NewPurchase(buyingFrom string, lotID int, price *float64) Purchase {
	if buyingFrom == CoproName {
		return CoproPurchase{Lot: lotID, PurchasePrice: price}
	}

	return PortagePurchase{Seller: buyingFrom, Lot: lotID, PurchasePrice: price}
}

// SellerName returns the participant name or CoproName.
func SellerName(p Purchase) string {
	switch v := p.(type) {
	case PortagePurchase:
		return v.Seller
	case CoproPurchase:
		return CoproName
	default:
		return ""
	}
}

// PortageFrom reports whether the participant bought a portage lot, and from whom.
func (p Participant) PortageFrom() (PortagePurchase, bool) {
	v, ok := p.Purchase.(PortagePurchase)
	return v, ok
}

// BuysFromCopro reports whether the participant bought from the copropriété.
func (p Participant) BuysFromCopro() bool {
	_, ok := p.Purchase.(CoproPurchase)
	return ok
}

// StoredPrice returns the stored purchase price, or 0 when unknown.
func (p Participant) StoredPrice() float64 {
	if p.Purchase == nil {
		return 0
	}

	price, _ := p.Purchase.Price()

	return price
}
