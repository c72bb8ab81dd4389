package api

import "github.com/shaxn3/WSTFinalProject/internal/domain"

// MutationResponse is the success envelope for the mutating actions. Member
// is set for add and update, which echo the stored record back (including
// any generated ID).
type MutationResponse struct {
	Success bool           `json:"success"`
	Member  *domain.Member `json:"member,omitempty"`
	Message string         `json:"message"`
}
