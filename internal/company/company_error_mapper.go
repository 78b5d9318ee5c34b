package company

import (
	"errors"
	"strings"

	companyerrors "hrms/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_companies_email" {
			return companyerrors.ErrCompanyEmailTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_companies_email") {
		return companyerrors.ErrCompanyEmailTaken
	}

	return err
}
