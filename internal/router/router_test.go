package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/config"
	"backoffice/internal/access"
	"backoffice/internal/core"
	fluentdRepo "backoffice/internal/database/fluentd/repository"
	mongoRepo "backoffice/internal/database/mongodb/repository"
	redisRepo "backoffice/internal/database/redis/repository"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/pkg/response"
	"backoffice/internal/service"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

type discardPoster struct{}

func (discardPoster) Post(context.Context, string, any) error { return nil }
func (discardPoster) Close() error                            { return nil }

// staticSource 固定的參考資料，足夠讓讀取類 handler 回 200
type staticSource struct{}

func (staticSource) Fetch(_ context.Context, kind organization.CollectionKind) (any, error) {
	switch kind {
	case organization.CollectionPositions:
		return []organization.Position{{ID: 1, Name: "Store Manager"}}, nil
	case organization.CollectionSupermarkets:
		return []organization.Workplace{organization.Supermarket(1, "Centrum")}, nil
	case organization.CollectionWarehouses:
		return []organization.Workplace{}, nil
	case organization.CollectionAddresses:
		return []organization.Address{}, nil
	case organization.CollectionEmployees:
		return []organization.Employee{
			{ID: 1, FirstName: "Jana", LastName: "Novak", PositionID: 1, Workplace: organization.Supermarket(1, "")},
		}, nil
	}
	return nil, &organization.NetworkError{Op: "fetch " + string(kind)}
}

// newTestEngine 與正式環境相同的 middleware 與路由，資料層換成固定資料
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	conf := &config.Configuration{}
	conf.App.Env = "test"
	conf.App.SecretKey = testSecret

	logger := zap.NewNop()
	tr, metric := &telemetry.Trace{}, &telemetry.Metric{}
	logs := fluentdRepo.NewLogRepository(conf, discardPoster{})
	fluentd := fluentdRepo.NewFluentdRepository(logs)
	mongodb := &mongoRepo.MongoDBRepository{}

	source := staticSource{}
	loader := service.NewCatalogLoader(logger, tr, source)
	employees := service.NewEmployeeService(logger, tr, mongodb, loader, fluentd)
	assignments := service.NewAssignmentService(logger, tr, metric, conf, loader, employees, employees)
	catalogSource := service.NewMongoCatalogSource(logger, tr, metric, conf, mongodb, &redisRepo.RedisRepository{})
	positions := service.NewPositionService(logger, tr, mongodb, loader, catalogSource)

	role := middleware.NewRole(logger, tr, metric, conf)
	return NewRouter(
		conf,
		middleware.NewTraceEntry(tr, metric, conf),
		middleware.NewRecovery(logger, tr, metric, logs),
		middleware.NewCors(tr, conf),
		middleware.NewLogger(logger, tr, logs),
		middleware.NewResponse(logger, tr, metric, logs),
		role,
		NewHealthRouter(handler.NewHealthHandler(service.NewHealthService(), conf)),
		NewViewRouter(handler.NewViewHandler(tr)),
		NewCatalogRouter(handler.NewCatalogHandler(tr, service.NewCatalogService(tr, source)), role),
		NewEmployeeRouter(handler.NewEmployeeHandler(tr, employees), role),
		NewAssignmentRouter(handler.NewAssignmentHandler(tr, assignments), role),
		NewPositionRouter(handler.NewPositionHandler(tr, positions), role),
	)
}

func tokenFor(t *testing.T, role access.Role) string {
	t.Helper()
	if role == access.RolePublic {
		return ""
	}
	claims := core.Claims{
		Username: "tester",
		Role:     role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// 寫入類請求刻意帶無效的 id 或 body，放行後在 handler 的驗證就停下，不會碰到資料庫
var apiRoleTable = []struct {
	method   string
	path     string
	body     string
	required access.Role
}{
	{http.MethodGet, "/api/catalog/positions", "", access.RoleEmployee},
	{http.MethodGet, "/api/catalog/supermarkets", "", access.RoleEmployee},
	{http.MethodGet, "/api/employees", "", access.RoleEmployee},
	{http.MethodGet, "/api/employees/1", "", access.RoleEmployee},
	{http.MethodGet, "/api/employees/1/hierarchy", "", access.RoleEmployee},
	{http.MethodGet, "/api/employees/1/average-salary", "", access.RoleEmployee},

	{http.MethodPost, "/api/employees", `{}`, access.RoleAdmin},
	{http.MethodPut, "/api/employees/1", `{}`, access.RoleAdmin},
	{http.MethodDelete, "/api/employees/not-a-number", "", access.RoleAdmin},
	{http.MethodPost, "/api/employees/salary-indexation", `{}`, access.RoleAdmin},

	{http.MethodPost, "/api/positions", `{}`, access.RoleAdmin},
	{http.MethodPut, "/api/positions/not-a-number", `{}`, access.RoleAdmin},
	{http.MethodDelete, "/api/positions/not-a-number", "", access.RoleAdmin},

	{http.MethodGet, "/api/assignment-sessions/missing", "", access.RoleAdmin},
	{http.MethodDelete, "/api/assignment-sessions/missing", "", access.RoleAdmin},
	{http.MethodPut, "/api/assignment-sessions/missing/position", `{"positionId":1}`, access.RoleAdmin},
	{http.MethodPut, "/api/assignment-sessions/missing/workplace", `{"kind":"none"}`, access.RoleAdmin},
	{http.MethodPut, "/api/assignment-sessions/missing/manager", `{}`, access.RoleAdmin},
	{http.MethodPut, "/api/assignment-sessions/missing/details", `{}`, access.RoleAdmin},
	{http.MethodPost, "/api/assignment-sessions/missing/submit", "", access.RoleAdmin},

	{http.MethodGet, "/api/views/admin", "", access.RolePublic},
	{http.MethodGet, "/api/routes", "", access.RolePublic},
}

func TestAPIRoleTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestEngine(t)

	for _, row := range apiRoleTable {
		for _, caller := range access.Roles() {
			t.Run(row.method+" "+row.path+" as "+caller.String(), func(t *testing.T) {
				w, env := do(r, row.method, row.path, row.body, tokenFor(t, caller))

				if access.AtLeast(caller, row.required) {
					assert.NotEqual(t, http.StatusForbidden, w.Code, env.Description)
					assert.NotEqual(t, http.StatusUnauthorized, w.Code, env.Description)
					assert.Less(t, w.Code, http.StatusInternalServerError, env.Description)
					return
				}
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.Equal(t, cErr.PERMISSION_DENIED, env.Code)
			})
		}
	}
}

func TestAPIReadsReachHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestEngine(t)
	employee := tokenFor(t, access.RoleEmployee)

	w, env := do(r, http.MethodGet, "/api/employees/1", "", employee)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jana", env.Data.(map[string]any)["firstName"])

	w, _ = do(r, http.MethodGet, "/api/catalog/positions", "", employee)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestViewResolution(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestEngine(t)

	cases := []struct {
		name   string
		path   string
		caller access.Role
		kind   access.ResultKind
		strict int
	}{
		{name: "public page", path: "/api/views/login", caller: access.RolePublic, kind: access.ResultView, strict: http.StatusOK},
		{name: "user below admin", path: "/api/views/admin", caller: access.RoleUser, kind: access.ResultDenied, strict: http.StatusForbidden},
		{name: "admin panel", path: "/api/views/admin/admin-panel", caller: access.RoleAdmin, kind: access.ResultView, strict: http.StatusOK},
		{name: "unknown page", path: "/api/views/nowhere", caller: access.RoleAdmin, kind: access.ResultNotFound, strict: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := tokenFor(t, tc.caller)

			w, env := do(r, http.MethodGet, tc.path, "", token)
			require.Equal(t, http.StatusOK, w.Code)
			data, ok := env.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, string(tc.kind), data["kind"])

			w, _ = do(r, http.MethodGet, tc.path+"?strict=true", "", token)
			assert.Equal(t, tc.strict, w.Code)
		})
	}
}

func TestHealthRoutesIgnoreAuthorization(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTestEngine(t)

	for _, path := range []string{"/health/liveness", "/version", "/metrics"} {
		w, _ := do(r, http.MethodGet, path, "", "not-a-jwt")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w, env := do(r, http.MethodGet, "/api/routes", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, cErr.INVALID_SESSION, env.Code)
}
