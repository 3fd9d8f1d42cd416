package engine

import "github.com/raushan22882917/f-7556/internal/models"

// NextUpcoming returns the first hackathon in hs whose derived status is
// upcoming, or nil when there is none. The store lists hackathons by
// start_date ascending, so the first upcoming entry is the temporally
// nearest one; records sharing a start date keep their input order.
//
// Callers must re-run the selection whenever the list changes or enough
// wall-clock time passes for an upcoming record to turn ongoing.
func NextUpcoming(hs []models.Hackathon) *models.Hackathon {
	for i := range hs {
		if hs[i].Status == models.PhaseUpcoming {
			h := hs[i]
			return &h
		}
	}
	return nil
}
