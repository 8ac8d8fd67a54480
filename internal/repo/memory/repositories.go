package memory

import (
	"procurement-bidding-api/internal/repo"
)

type diagnosticsRepo struct{}

func (diagnosticsRepo) Ping() error { return nil }

// NewRepositories wires the in-memory implementations into the same aggregate
// the Postgres-backed constructor produces.
func NewRepositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: diagnosticsRepo{},
		Requirement: NewRequirementRepo(),
		Bid:         NewBidRepo(),
		Commission:  NewCommissionRepo(),
	}
}
