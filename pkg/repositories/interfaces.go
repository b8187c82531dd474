package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/radimbig2/SRM/pkg/models"
)

// ClientRepo defines the interface for client repository operations
type ClientRepo interface {
	Create(ctx context.Context, req models.CreateClientRequest) (*models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Count(ctx context.Context) (int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecruiterRepo defines the interface for recruiter repository operations
type RecruiterRepo interface {
	Create(ctx context.Context, req models.CreateRecruiterRequest) (*models.Recruiter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recruiter, error)
	List(ctx context.Context) ([]models.Recruiter, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VacancyRepo defines the interface for vacancy repository operations
type VacancyRepo interface {
	Create(ctx context.Context, req models.CreateVacancyRequest) (*models.Vacancy, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vacancy, error)
	List(ctx context.Context, clientID *uuid.UUID) ([]models.Vacancy, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CandidateRepo defines the interface for candidate repository operations
type CandidateRepo interface {
	Create(ctx context.Context, req models.CreateCandidateRequest) (*models.Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	List(ctx context.Context, search string) ([]models.Candidate, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepo defines the interface for application lifecycle operations
type ApplicationRepo interface {
	Create(ctx context.Context, req models.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepo defines the interface for payment ledger operations
type PaymentRepo interface {
	Create(ctx context.Context, applicationID uuid.UUID, req models.CreatePaymentRequest) (*models.Payment, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportRepo defines the interface for the reporting queries
type ReportRepo interface {
	Pipeline(ctx context.Context, filter models.PipelineFilter) ([]models.PipelineRow, error)
	Earnings(ctx context.Context, year, month int) (*models.EarningsReport, error)
}
