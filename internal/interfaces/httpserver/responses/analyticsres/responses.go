package analyticsres

import (
	"crm-server/internal/domain/analytics"
)

// SummaryResponse represents aggregate CRM figures
type SummaryResponse struct {
	Object         string           `json:"object"`
	CustomersTotal int64            `json:"customers_total"`
	LeadsByStatus  map[string]int64 `json:"leads_by_status"`
	TasksByStatus  map[string]int64 `json:"tasks_by_status"`
	ActiveUsers    int64            `json:"active_users"`
}

// NewSummaryResponse creates a response from domain summary figures
func NewSummaryResponse(s *analytics.Summary) *SummaryResponse {
	leads := make(map[string]int64, len(s.LeadsByStatus))
	for status, count := range s.LeadsByStatus {
		leads[string(status)] = count
	}
	tasks := make(map[string]int64, len(s.TasksByStatus))
	for status, count := range s.TasksByStatus {
		tasks[string(status)] = count
	}

	return &SummaryResponse{
		Object:         "analytics.summary",
		CustomersTotal: s.CustomersTotal,
		LeadsByStatus:  leads,
		TasksByStatus:  tasks,
		ActiveUsers:    s.ActiveUsers,
	}
}
