package service

import (
	"procurement-bidding-api/internal/repo"
)

type DiagnosticsService struct {
	diagnosticsRepo repo.Diagnostics
}

func NewDiagnosticsService(repos *repo.Repositories) *DiagnosticsService {
	return &DiagnosticsService{
		diagnosticsRepo: repos.Diagnostics,
	}
}

func (s *DiagnosticsService) Ping() error {
	return s.diagnosticsRepo.Ping()
}
