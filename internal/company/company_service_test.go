package company_test

import (
	"context"
	"testing"

	"hrms/internal/company"
	companyerrors "hrms/internal/company/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeCompanyRepository struct {
	companies map[string]*company.Company
	deleted   []string
}

func newFakeCompanyRepository() *fakeCompanyRepository {
	return &fakeCompanyRepository{companies: map[string]*company.Company{}}
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	f.companies[c.ID.String()] = c
	return nil
}

func (f *fakeCompanyRepository) FindAll(ctx context.Context) ([]company.Company, error) {
	var out []company.Company
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	if c, ok := f.companies[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	f.companies[c.ID.String()] = c
	return nil
}

func (f *fakeCompanyRepository) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.companies, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestCreateCompanyParsesContractDates(t *testing.T) {
	repo := newFakeCompanyRepository()
	service := company.NewService(repo, zap.NewNop())

	resp, err := service.Create(context.Background(), company.CreateCompanyRequest{
		Name:              "  Acme Corp ",
		ContractStartDate: strPtr("2025-01-01"),
		ContractEndDate:   strPtr("2026-01-01"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", resp.Name)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "2025-01-01", *resp.ContractStartDate)
	assert.Equal(t, "2026-01-01", *resp.ContractEndDate)
}

func TestCreateCompanyRejectsInvertedContractRange(t *testing.T) {
	repo := newFakeCompanyRepository()
	service := company.NewService(repo, zap.NewNop())

	_, err := service.Create(context.Background(), company.CreateCompanyRequest{
		Name:              "Acme Corp",
		ContractStartDate: strPtr("2026-01-01"),
		ContractEndDate:   strPtr("2025-01-01"),
	})

	assert.ErrorIs(t, err, companyerrors.ErrContractRangeInvalid)
	assert.Empty(t, repo.companies)
}

func TestCreateCompanyRejectsBadDateFormat(t *testing.T) {
	repo := newFakeCompanyRepository()
	service := company.NewService(repo, zap.NewNop())

	_, err := service.Create(context.Background(), company.CreateCompanyRequest{
		Name:           "Acme Corp",
		FoundationYear: strPtr("01/01/2020"),
	})

	assert.ErrorIs(t, err, companyerrors.ErrInvalidDateFormat)
}

func TestUpdateCompanyRevalidatesContractRange(t *testing.T) {
	repo := newFakeCompanyRepository()
	service := company.NewService(repo, zap.NewNop())

	created, err := service.Create(context.Background(), company.CreateCompanyRequest{
		Name:              "Acme Corp",
		ContractStartDate: strPtr("2025-01-01"),
		ContractEndDate:   strPtr("2026-01-01"),
	})
	assert.NoError(t, err)

	// Moving the end date before the existing start must fail.
	_, err = service.Update(context.Background(), created.ID, company.UpdateCompanyRequest{
		ContractEndDate: strPtr("2024-06-01"),
	})

	assert.ErrorIs(t, err, companyerrors.ErrContractRangeInvalid)
}

func TestCompanyLookupErrors(t *testing.T) {
	repo := newFakeCompanyRepository()
	service := company.NewService(repo, zap.NewNop())

	_, err := service.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)

	_, err = service.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)

	err = service.Delete(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
}
