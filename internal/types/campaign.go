package types

// CampaignStatus is the outcome of the eligibility classification. The
// rules are evaluated in strict order; see billing.Classify.
type CampaignStatus string

const (
	CampaignStatusInactive      CampaignStatus = "inactive"
	CampaignStatusSignupNotOpen CampaignStatus = "signup_not_open"
	CampaignStatusSignupClosed  CampaignStatus = "signup_closed"
	CampaignStatusEnded         CampaignStatus = "ended"
	CampaignStatusUpcoming      CampaignStatus = "upcoming"
	CampaignStatusOngoing       CampaignStatus = "ongoing"
	CampaignStatusEndingSoon    CampaignStatus = "ending_soon"
	CampaignStatusActive        CampaignStatus = "active"
)

// SignupOpen reports whether the status permits a new signup.
func (s CampaignStatus) SignupOpen() bool {
	switch s {
	case CampaignStatusUpcoming, CampaignStatusOngoing, CampaignStatusEndingSoon, CampaignStatusActive:
		return true
	}
	return false
}
