// Package lifecycle holds the transition graphs for garment stages and
// supplier relationship statuses, plus the pure decision function that
// gates every stage/status change.
package lifecycle

import (
	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
)

// Graph maps a state to its permitted next states. No entry (or an empty
// list) means the state is terminal. Graphs are package-level constants in
// spirit: built once, never mutated.
type Graph map[string][]string

// GarmentStages allows one step forward and one step back at every interior
// stage. PRODUCTION has no exit.
var GarmentStages = Graph{
	entity.StageConcept:     {entity.StageDesign},
	entity.StageDesign:      {entity.StageConcept, entity.StageDevelopment},
	entity.StageDevelopment: {entity.StageDesign, entity.StageSampling},
	entity.StageSampling:    {entity.StageDevelopment, entity.StageProduction},
	entity.StageProduction:  {},
}

// SupplierStatuses models the supplier pipeline. REJECTED is reachable from
// three states and has no exit.
var SupplierStatuses = Graph{
	entity.SupplierStatusOffered:      {entity.SupplierStatusSampling, entity.SupplierStatusRejected},
	entity.SupplierStatusSampling:     {entity.SupplierStatusApproved, entity.SupplierStatusRejected},
	entity.SupplierStatusApproved:     {entity.SupplierStatusInProduction, entity.SupplierStatusRejected},
	entity.SupplierStatusRejected:     {},
	entity.SupplierStatusInProduction: {entity.SupplierStatusInStore},
	entity.SupplierStatusInStore:      {},
}

// AttemptTransition returns target when it is reachable from current, and
// an INVALID_TRANSITION error otherwise. Pure and total; the caller applies
// the new state transactionally.
func AttemptTransition(g Graph, current, target string) (string, error) {
	for _, next := range g[current] {
		if next == target {
			return target, nil
		}
	}
	return "", apperr.NewInvalidTransition(current, target, g[current])
}

// Terminal reports whether state has no outgoing transitions.
func Terminal(g Graph, state string) bool {
	return len(g[state]) == 0
}
