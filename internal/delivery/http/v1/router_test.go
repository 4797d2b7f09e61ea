package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-board-backend/config"
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router        *gin.Engine
	jobUC         *MockJobUC
	applicationUC *MockApplicationUC
	seekerAuthUC  *MockAccountUC
	documentUC    *MockDocumentUC
	seekerToken   string
	employerToken string
}

func newTestAPI(t *testing.T, health usecase.HealthUsecase) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", "job-board", time.Hour)
	seekerToken, err := tokens.Issue("seeker-1", string(domain.RoleSeeker))
	require.NoError(t, err)
	employerToken, err := tokens.Issue("employer-1", string(domain.RoleEmployer))
	require.NoError(t, err)

	if health == nil {
		health = usecase.NewHealthUsecase(nil)
	}

	api := &testAPI{
		jobUC:         new(MockJobUC),
		applicationUC: new(MockApplicationUC),
		seekerAuthUC:  new(MockAccountUC),
		documentUC:    new(MockDocumentUC),
		seekerToken:   seekerToken,
		employerToken: employerToken,
	}
	api.router = v1.NewRouter(v1.RouterDeps{
		SeekerAccountUC:   api.seekerAuthUC,
		EmployerAccountUC: new(MockAccountUC),
		JobUC:             api.jobUC,
		ApplicationUC:     api.applicationUC,
		DocumentUC:        api.documentUC,
		HealthUC:          health,
		Tokens:            tokens,
		Config: &config.Config{
			GinMode:                  "test",
			FrontendURL:              "http://localhost:5173",
			JWTTTL:                   time.Hour,
			RateLimitWindowSeconds:   60,
			RateLimitAuthThreshold:   100,
			RateLimitGlobalThreshold: 1000,
		},
	})
	return api
}

func (a *testAPI) doWithCookies(method, path, body string, cookies []*http.Cookie, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Kind    string   `json:"kind"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJobRoutes(t *testing.T) {
	t.Run("Should pass query filters to the listing", func(t *testing.T) {
		api := newTestAPI(t, nil)
		gte, lte := 100.0, 500.0
		want := domain.JobFilter{
			Title:     "dev",
			JobType:   "daily",
			Skills:    []string{"go", "sql"},
			SalaryGTE: &gte,
			SalaryLTE: &lte,
		}
		api.jobUC.On("List", mock.Anything, want, 2, 5, "-salary").
			Return(&domain.JobPage{Items: []domain.Job{}, Page: 2, Limit: 5}, nil).Once()

		w := api.do(http.MethodGet,
			"/v1/jobs?title=dev&jobType=daily&skillsRequired=go,sql&salary[gte]=100&salary[lte]=500&page=2&limit=5&sort=-salary",
			"", "")

		assert.Equal(t, http.StatusOK, w.Code)
		api.jobUC.AssertExpectations(t)
	})

	t.Run("Should use defaults when paging is absent", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.jobUC.On("List", mock.Anything, domain.JobFilter{}, 1, domain.DefaultJobPageSize, "").
			Return(&domain.JobPage{Items: []domain.Job{}, Page: 1, Limit: 10}, nil).Once()

		w := api.do(http.MethodGet, "/v1/jobs", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		api.jobUC.AssertExpectations(t)
	})

	t.Run("Should reject a non-numeric salary bound", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(http.MethodGet, "/v1/jobs?salary[gte]=abc", "", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, string(apperror.KindValidation), body.Error.Kind)
		assert.Equal(t, []string{"salary[gte] must be a number"}, body.Error.Details)
		api.jobUC.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a seeker posting a job", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(http.MethodPost, "/v1/jobs", api.seekerToken, `{"title":"Cook"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		api.jobUC.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should create a job for the authenticated employer", func(t *testing.T) {
		api := newTestAPI(t, nil)
		input := domain.JobInput{
			Title:       "Cook",
			Description: "Weekend shifts",
			JobType:     domain.JobTypePartTime,
			Location:    "Pune",
			Salary:      1200,
		}
		api.jobUC.On("Create", mock.Anything, "employer-1", input).
			Return(&domain.Job{ID: "job-1", Title: "Cook", PostedBy: "employer-1"}, nil).Once()

		w := api.do(http.MethodPost, "/v1/jobs", api.employerToken,
			`{"title":"Cook","description":"Weekend shifts","jobType":"part-time","location":"Pune","salary":1200}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var job domain.Job
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &job))
		assert.Equal(t, "job-1", job.ID)
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(http.MethodPost, "/v1/jobs", api.employerToken, `{"title":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should forward ownership errors", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.jobUC.On("Delete", mock.Anything, "job-1", "employer-1").
			Return(apperror.Forbidden("You do not own this job")).Once()

		w := api.do(http.MethodDelete, "/v1/jobs/job-1", api.employerToken, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should stream the applicant export as a spreadsheet", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.jobUC.On("ExportApplicants", mock.Anything, "job-1", "employer-1").
			Return([]byte("xlsx-bytes"), "applicants_job-1.xlsx", nil).Once()

		w := api.do(http.MethodGet, "/v1/jobs/job-1/applicants/export", api.employerToken, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="applicants_job-1.xlsx"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
		assert.Equal(t, "xlsx-bytes", w.Body.String())
	})

	t.Run("Should list jobs by poster without authentication", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.jobUC.On("ListByPoster", mock.Anything, "employer-9").Return([]domain.Job{}, nil).Once()

		w := api.do(http.MethodGet, "/v1/jobs/poster/employer-9", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(decode(t, w).Data))
	})
}

func TestApplicationRoutes(t *testing.T) {
	t.Run("Should apply as the authenticated seeker", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.applicationUC.On("Apply", mock.Anything, "job-1", "seeker-1").
			Return(&domain.Application{ID: "app-1", Status: domain.ApplicationStatusApplied}, nil).Once()

		w := api.do(http.MethodPost, "/v1/jobs/job-1/apply", api.seekerToken, "")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Should map a duplicate application to 409", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.applicationUC.On("Apply", mock.Anything, "job-1", "seeker-1").
			Return(nil, apperror.Conflict("You have already applied to this job")).Once()

		w := api.do(http.MethodPost, "/v1/jobs/job-1/apply", api.seekerToken, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, string(apperror.KindConflict), decode(t, w).Error.Kind)
	})

	t.Run("Should reject an employer applying", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(http.MethodPost, "/v1/jobs/job-1/apply", api.employerToken, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should update the status as the employer", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.applicationUC.On("UpdateStatus", mock.Anything, "app-1", "employer-1", domain.ApplicationStatusAccepted).
			Return(&domain.Application{ID: "app-1", Status: domain.ApplicationStatusAccepted}, nil).Once()

		w := api.do(http.MethodPatch, "/v1/applications/app-1/status", api.employerToken, `{"status":"accepted"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var app domain.Application
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &app))
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
	})

	t.Run("Should list my applications", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.applicationUC.On("ListForApplicant", mock.Anything, "seeker-1").
			Return([]domain.ApplicationWithJob{}, nil).Once()

		w := api.do(http.MethodGet, "/v1/applications/mine", api.seekerToken, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAccountRoutes(t *testing.T) {
	t.Run("Should register a seeker", func(t *testing.T) {
		api := newTestAPI(t, nil)
		input := domain.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "secret1", Phone: "555"}
		api.seekerAuthUC.On("Register", mock.Anything, input).
			Return(&domain.Account{ID: "seeker-1", Email: "ana@x.com"}, nil).Once()

		w := api.do(http.MethodPost, "/v1/seekers/register", "",
			`{"name":"Ana","email":"ana@x.com","password":"secret1","phone":"555"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Should verify the registration code", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.seekerAuthUC.On("VerifyRegistration", mock.Anything, "ana@x.com", "000000").
			Return(nil, apperror.InvalidOrExpiredOTP()).Once()

		w := api.do(http.MethodPost, "/v1/seekers/verify-otp", "", `{"email":"ana@x.com","otp":"000000"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(apperror.KindInvalidOrExpiredOTP), decode(t, w).Error.Kind)
	})

	t.Run("Should pass the client address to login", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.seekerAuthUC.On("Login", mock.Anything, "ana@x.com", "secret1", "192.0.2.1").
			Return(&domain.AuthResult{Token: "tok"}, nil).Once()

		w := api.do(http.MethodPost, "/v1/seekers/login", "", `{"email":"ana@x.com","password":"secret1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		api.seekerAuthUC.AssertExpectations(t)
	})

	t.Run("Should set an HttpOnly session cookie on login", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.seekerAuthUC.On("Login", mock.Anything, "ana@x.com", "secret1", "192.0.2.1").
			Return(&domain.AuthResult{Token: api.seekerToken}, nil).Once()

		w := api.do(http.MethodPost, "/v1/seekers/login", "", `{"email":"ana@x.com","password":"secret1"}`)

		require.Equal(t, http.StatusOK, w.Code)
		session := cookieNamed(w, "auth_token")
		require.NotNil(t, session)
		assert.Equal(t, api.seekerToken, session.Value)
		assert.True(t, session.HttpOnly)
		assert.Equal(t, 3600, session.MaxAge)
	})

	t.Run("Should not set a session cookie while a Google profile is incomplete", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.seekerAuthUC.On("ContinueWithGoogle", mock.Anything, "id-token").
			Return(&domain.OAuthResult{NeedsProfileCompletion: true}, nil).Once()

		w := api.do(http.MethodPost, "/v1/seekers/google", "", `{"idToken":"id-token"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, cookieNamed(w, "auth_token"))
	})

	t.Run("Should authenticate with the login cookie and require the CSRF header on writes", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.seekerAuthUC.On("Login", mock.Anything, "ana@x.com", "secret1", "192.0.2.1").
			Return(&domain.AuthResult{Token: api.seekerToken}, nil).Once()
		api.applicationUC.On("ListForApplicant", mock.Anything, "seeker-1").
			Return([]domain.ApplicationWithJob{}, nil).Once()
		api.applicationUC.On("Apply", mock.Anything, "j1", "seeker-1").
			Return(&domain.Application{ID: "a1", JobID: "j1", ApplicantID: "seeker-1"}, nil).Once()

		login := api.do(http.MethodPost, "/v1/seekers/login", "", `{"email":"ana@x.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, login.Code)
		session := cookieNamed(login, "auth_token")
		csrf := cookieNamed(login, "csrf_token")
		require.NotNil(t, session)
		require.NotNil(t, csrf)
		cookies := []*http.Cookie{session, csrf}

		w := api.doWithCookies(http.MethodGet, "/v1/applications/mine", "", cookies, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = api.doWithCookies(http.MethodPost, "/v1/jobs/j1/apply", "", cookies, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = api.doWithCookies(http.MethodPost, "/v1/jobs/j1/apply", "", cookies,
			map[string]string{"X-CSRF-Token": csrf.Value})
		assert.Equal(t, http.StatusCreated, w.Code)
		api.applicationUC.AssertExpectations(t)
	})

	t.Run("Should report profile completion for a new Google user", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.seekerAuthUC.On("ContinueWithGoogle", mock.Anything, "id-token").
			Return(&domain.OAuthResult{
				NeedsProfileCompletion: true,
				Profile:                &domain.ExternalIdentity{Email: "ana@x.com"},
			}, nil).Once()

		w := api.do(http.MethodPost, "/v1/seekers/google", "", `{"idToken":"id-token"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Profile completion required", body.Message)
	})
}

func TestDocumentRoutes(t *testing.T) {
	t.Run("Should return a view URL", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.documentUC.On("GetViewURL", mock.Anything, "employer-1").
			Return("https://bucket.example/doc?sig=1", nil).Once()

		w := api.do(http.MethodGet, "/v1/employers/me/document/view", api.employerToken, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"url":"https://bucket.example/doc?sig=1"}`, string(decode(t, w).Data))
	})

	t.Run("Should reject a foreign key on confirm", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.documentUC.On("ConfirmUpload", mock.Anything, "employer-1", "verification-documents/employer-2/x.pdf").
			Return(apperror.Forbidden("Key does not belong to this employer")).Once()

		w := api.do(http.MethodPost, "/v1/employers/me/document/confirm", api.employerToken,
			`{"key":"verification-documents/employer-2/x.pdf"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHealthRoute(t *testing.T) {
	t.Run("Should report healthy dependencies", func(t *testing.T) {
		api := newTestAPI(t, usecase.NewHealthUsecase(map[string]usecase.Pinger{
			"postgres": usecase.PingFunc(func(context.Context) error { return nil }),
		}))

		w := api.do(http.MethodGet, "/v1/health", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should report a failing dependency", func(t *testing.T) {
		api := newTestAPI(t, usecase.NewHealthUsecase(map[string]usecase.Pinger{
			"redis": usecase.PingFunc(func(context.Context) error { return errors.New("down") }),
		}))

		w := api.do(http.MethodGet, "/v1/health", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
