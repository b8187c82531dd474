package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radimbig2/SRM/internal/handlers"
	"github.com/radimbig2/SRM/pkg/middleware"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

type stubApplicationRepo struct {
	created   *models.CreateApplicationRequest
	updated   *models.UpdateApplicationRequest
	deleted   *uuid.UUID
	app       *models.Application
	createErr error
	updateErr error
}

func (s *stubApplicationRepo) Create(ctx context.Context, req models.CreateApplicationRequest) (*models.Application, error) {
	s.created = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.app, nil
}

func (s *stubApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	if s.app == nil || s.app.ID != id {
		return nil, repositories.NotFound("application %s does not exist", id)
	}
	return s.app, nil
}

func (s *stubApplicationRepo) Update(ctx context.Context, id uuid.UUID, req models.UpdateApplicationRequest) (*models.Application, error) {
	s.updated = &req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.app, nil
}

func (s *stubApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = &id
	return nil
}

type stubPaymentRepo struct {
	payments []models.Payment
	created  *models.CreatePaymentRequest
}

func (s *stubPaymentRepo) Create(ctx context.Context, applicationID uuid.UUID, req models.CreatePaymentRequest) (*models.Payment, error) {
	s.created = &req
	return &models.Payment{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		PaidDate:      req.PaidDate,
		Amount:        req.Amount,
		Note:          req.Note,
	}, nil
}

func (s *stubPaymentRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Payment, error) {
	return s.payments, nil
}

func (s *stubPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newTestServer(register func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.Error(ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {}))
	register(e.Group("/api"))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestApplicationHandler_Create(t *testing.T) {
	appID := uuid.New()
	repo := &stubApplicationRepo{app: &models.Application{
		ID:            appID,
		Status:        models.StatusNew,
		DateContacted: models.NewDate(2025, time.January, 15),
		PaymentAmount: decimal.Zero,
	}}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(repo, &stubPaymentRepo{}).RegisterRoutes(g)
	})

	body := `{
		"candidate_id": "` + uuid.NewString() + `",
		"vacancy_id": "` + uuid.NewString() + `",
		"recruiter_id": "` + uuid.NewString() + `",
		"date_contacted": "2025-01-15",
		"status": "new"
	}`
	rec := doRequest(e, http.MethodPost, "/api/applications", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, models.StatusNew, repo.created.Status)
	assert.Equal(t, "2025-01-15", repo.created.DateContacted.String())
}

func TestApplicationHandler_Create_MissingFields(t *testing.T) {
	repo := &stubApplicationRepo{}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(repo, &stubPaymentRepo{}).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodPost, "/api/applications", `{"status": "new"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, repo.created)
}

func TestApplicationHandler_Update_NullClearsField(t *testing.T) {
	appID := uuid.New()
	repo := &stubApplicationRepo{app: &models.Application{ID: appID, Status: models.StatusInProcess}}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(repo, &stubPaymentRepo{}).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodPatch, "/api/applications/"+appID.String(),
		`{"status": "in_process", "rejection_date": null}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.updated)
	require.NotNil(t, repo.updated.Status)
	assert.Equal(t, models.StatusInProcess, *repo.updated.Status)
	// explicit null arrives as a present field with a nil value
	require.True(t, repo.updated.RejectionDate.Set)
	assert.Nil(t, repo.updated.RejectionDate.Value)
}

func TestApplicationHandler_Update_AbsentFieldStaysUnset(t *testing.T) {
	appID := uuid.New()
	repo := &stubApplicationRepo{app: &models.Application{ID: appID}}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(repo, &stubPaymentRepo{}).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodPatch, "/api/applications/"+appID.String(), `{"status": "new"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.updated)
	assert.False(t, repo.updated.RejectionDate.Set)
	assert.False(t, repo.updated.StartDate.Set)
}

func TestApplicationHandler_Update_BadID(t *testing.T) {
	repo := &stubApplicationRepo{}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(repo, &stubPaymentRepo{}).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodPatch, "/api/applications/not-a-uuid", `{"status": "new"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationHandler_CreatePayment(t *testing.T) {
	appID := uuid.New()
	payments := &stubPaymentRepo{}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(&stubApplicationRepo{}, payments).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodPost, "/api/applications/"+appID.String()+"/payments",
		`{"paid_date": "2025-03-10", "amount": 150.5, "note": "first installment"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, payments.created)
	assert.Equal(t, "2025-03-10", payments.created.PaidDate.String())
	assert.True(t, payments.created.Amount.Equal(decimal.NewFromFloat(150.5)))

	var payment models.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	assert.Equal(t, appID, payment.ApplicationID)
}

func TestApplicationHandler_CreatePayment_MissingPaidDate(t *testing.T) {
	payments := &stubPaymentRepo{}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(&stubApplicationRepo{}, payments).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodPost, "/api/applications/"+uuid.NewString()+"/payments",
		`{"amount": 100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, payments.created)
}

type stubReportRepo struct {
	filter *models.PipelineFilter
}

func (s *stubReportRepo) Pipeline(ctx context.Context, filter models.PipelineFilter) ([]models.PipelineRow, error) {
	s.filter = &filter
	return []models.PipelineRow{}, nil
}

func (s *stubReportRepo) Earnings(ctx context.Context, year, month int) (*models.EarningsReport, error) {
	return &models.EarningsReport{}, nil
}

func TestReportHandler_Pipeline_SearchParam(t *testing.T) {
	repo := &stubReportRepo{}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewReportHandler(repo).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodGet, "/api/reports/pipeline?search=acme", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.filter)
	assert.Equal(t, "acme", repo.filter.Search)

	// q still works as an alias
	rec = doRequest(e, http.MethodGet, "/api/reports/pipeline?q=globex", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "globex", repo.filter.Search)
}

func TestErrorResponseShape(t *testing.T) {
	appID := uuid.New()
	repo := &stubApplicationRepo{}
	e := newTestServer(func(g *echo.Group) {
		handlers.NewApplicationHandler(repo, &stubPaymentRepo{}).RegisterRoutes(g)
	})

	rec := doRequest(e, http.MethodGet, "/api/applications/"+appID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "does not exist")
}
