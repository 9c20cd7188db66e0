// Package dto holds the wire-level request/response shapes for the HTTP
// surface, kept separate from the domain model the core reasons over.
package dto

import "github.com/noah-isme/campus-scheduler/internal/domain"

// GenerateScheduleRequest instructs the generator to build a proposal for
// the supplied world snapshot. World itself is not tagged "required": it
// embeds slice fields, and go-playground/validator's zero-value check for a
// plain (non-pointer) struct compares it with == internally, which panics
// on any struct holding a slice. Referential and numeric validity of World
// is the core's job (internal/planning.validate), not the wire layer's.
type GenerateScheduleRequest struct {
	World domain.World `json:"world"`
}

// GenerateScheduleResponse returns a proposal built synchronously.
type GenerateScheduleResponse struct {
	Mode    string                 `json:"mode"`
	Entries []domain.ScheduleEntry `json:"entries"`
}

// GenerateScheduleAccepted is returned for async requests: the caller polls
// the proposal endpoint for the result.
type GenerateScheduleAccepted struct {
	ProposalID string `json:"proposalId"`
	Status     string `json:"status"`
}

// ProposalResponse is returned by the proposal lookup endpoint.
type ProposalResponse struct {
	ProposalID string                 `json:"proposalId"`
	Status     string                 `json:"status"`
	Entries    []domain.ScheduleEntry `json:"entries,omitempty"`
	Error      string                 `json:"error,omitempty"`
}
