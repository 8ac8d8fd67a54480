package pgdb

import (
	"procurement-bidding-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

func (r *DiagnosticsRepo) Ping() error {
	if err := r.Database.Ping(); err != nil {
		return err
	}

	return nil
}
