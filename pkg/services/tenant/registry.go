package tenant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"gopkg.in/ini.v1"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Registry resolves account branding from a tenants.ini file. Each section
// is named after an account id:
//
//	[7]
//	business_name = Iron Paradise Gym
//	currency      = PHP
//	timezone      = Asia/Manila
//	report_email  = owner@ironparadise.ph
type Registry interface {
	GetTenants(ctx context.Context) ([]domain.Tenant, error)
	GetTenant(ctx context.Context, accountID int64) (domain.Tenant, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewRegistry loads the file at path and validates every section. An empty
// path yields a registry without tenants.
func NewRegistry(path string) (Registry, error) {
	if path == "" {
		return &iniRegistry{cfg: ini.Empty()}, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenants file: %w", err)
	}
	r := &iniRegistry{cfg: cfg}
	if _, err := r.GetTenants(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *iniRegistry) GetTenants(_ context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		t, err := fromSection(section)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func (r *iniRegistry) GetTenant(_ context.Context, accountID int64) (domain.Tenant, error) {
	section, err := r.cfg.GetSection(strconv.FormatInt(accountID, 10))
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: account %d", ErrTenantNotFound, accountID)
	}
	return fromSection(section)
}

func fromSection(section *ini.Section) (domain.Tenant, error) {
	id, err := strconv.ParseInt(section.Name(), 10, 64)
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("tenant section %q is not an account id", section.Name())
	}

	t := domain.Tenant{
		AccountID:    id,
		BusinessName: section.Key("business_name").String(),
		Currency:     strings.ToUpper(strings.TrimSpace(section.Key("currency").String())),
		Timezone:     strings.TrimSpace(section.Key("timezone").String()),
		ReportEmail:  strings.TrimSpace(section.Key("report_email").String()),
	}
	if t.Timezone != "" {
		if t.Location, err = time.LoadLocation(t.Timezone); err != nil {
			return domain.Tenant{}, fmt.Errorf("tenant %d: invalid timezone %q: %w", id, t.Timezone, err)
		}
	}
	return t, nil
}

// Lookup returns the account's tenant, or a tenant carrying only the
// account id when none is configured.
func Lookup(ctx context.Context, r Registry, accountID int64) domain.Tenant {
	if r == nil {
		return domain.Tenant{AccountID: accountID}
	}
	t, err := r.GetTenant(ctx, accountID)
	if err != nil {
		return domain.Tenant{AccountID: accountID}
	}
	return t
}

// Apply copies the tenant's business name, currency and time zone onto req.
// Unset tenant fields leave the exporter defaults in place.
func Apply(ctx context.Context, r Registry, req domain.ReportRequest) domain.ReportRequest {
	t := Lookup(ctx, r, req.AccountID)
	req.BusinessName = t.BusinessName
	req.Currency = t.Currency
	req.Location = t.Location
	return req
}
