package dto

// AdminStatsResponse carries the verification counters shown on the admin
// dashboard. VerifiedToday counts records verified on the current date;
// the other three are totals over open records.
type AdminStatsResponse struct {
	VerifiedToday        int `json:"verified_today"`
	PendingVerifications int `json:"pending_verifications"`
	RejectedUsages       int `json:"rejected_usages"`
	Alerts               int `json:"alerts"`
	PendingReservations  int `json:"pending_reservations"`
}
