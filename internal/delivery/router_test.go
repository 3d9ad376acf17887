package delivery

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BitSparkCode/online-shop-api/internal/auth"
	"github.com/BitSparkCode/online-shop-api/internal/repository/memory"
	"github.com/BitSparkCode/online-shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := quietLogger()
	store := memory.NewStore(logger)
	tokens := auth.NewTokenService("test-secret")
	authUC := usecase.NewAuthUseCase(store.Users(), auth.NewPasswordHasher(bcrypt.MinCost), tokens, logger)

	return &testServer{
		t: t,
		router: NewRouter(RouterDeps{
			Auth:       authUC,
			Categories: usecase.NewCategoryUseCase(store.Categories(), logger),
			Products:   usecase.NewProductUseCase(store.Products(), logger),
			Verifier:   tokens,
			Registry:   prometheus.NewRegistry(),
			Logger:     logger,
		}),
	}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/register", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(s.t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(s.t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func TestEndToEnd_RegisterLoginListCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/register", "", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","role":"user"}`, w.Body.String())

	w = s.do(http.MethodPost, "/login", "", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = s.do(http.MethodGet, "/categories", resp.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/categories", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/categories", "garbage", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.login("alice", "pw")

	w := s.do(http.MethodPost, "/login", "", `{"username":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	w = s.do(http.MethodPost, "/login", "", `{"username":"nobody","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_AdminRoleAndValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/register", "", `{"username":"root","password":"pw","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"root","role":"admin"}`, w.Body.String())

	for _, body := range []string{`{"username":"x"}`, `{"password":"x"}`, `not json`} {
		w = s.do(http.MethodPost, "/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	}
}

func TestResetPassword(t *testing.T) {
	s := newTestServer(t)
	token := s.login("alice", "old")
	s.login("bob", "pw")

	w := s.do(http.MethodPost, "/reset-password", "", `{"username":"bob","newPassword":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// alice's token is enough to reset bob's password.
	w = s.do(http.MethodPost, "/reset-password", token, `{"username":"bob","newPassword":"new"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Password reset successfully"}`, w.Body.String())

	w = s.do(http.MethodPost, "/login", "", `{"username":"bob","password":"new"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/reset-password", token, `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login("alice", "pw")

	w := s.do(http.MethodPost, "/categories", token, `{"name":"Books"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Books"}`, w.Body.String())

	w = s.do(http.MethodGet, "/categories/1", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Books"}`, w.Body.String())

	w = s.do(http.MethodPut, "/categories/1", token, `{"name":"Comics"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Comics"}`, w.Body.String())

	w = s.do(http.MethodPut, "/categories/77", token, `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":77,"name":"Ghost"}`, w.Body.String())

	w = s.do(http.MethodGet, "/categories", token, "")
	assert.JSONEq(t, `[{"id":1,"name":"Comics"}]`, w.Body.String())

	w = s.do(http.MethodDelete, "/categories/1", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Category deleted"}`, w.Body.String())

	w = s.do(http.MethodDelete, "/categories/1", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/categories/1", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Category not found"}`, w.Body.String())

	for _, path := range []string{"/categories/abc", "/categories/0", "/categories/-3"} {
		w = s.do(http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w = s.do(http.MethodPost, "/categories", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductCRUD_UnenforcedCategory(t *testing.T) {
	s := newTestServer(t)
	token := s.login("alice", "pw")

	w := s.do(http.MethodPost, "/products", token, `{"name":"Pen","price":1.5,"categoryId":999}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Pen","price":1.5,"categoryId":999}`, w.Body.String())

	w = s.do(http.MethodPost, "/categories", token, `{"name":"Office"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(http.MethodPost, "/products", token, `{"name":"Stapler","price":0,"categoryId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodDelete, "/categories/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/products/2", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"name":"Stapler","price":0,"categoryId":1}`, w.Body.String())

	w = s.do(http.MethodPut, "/products/2", token, `{"name":"Stapler XL","price":12,"categoryId":5}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"name":"Stapler XL","price":12,"categoryId":5}`, w.Body.String())

	w = s.do(http.MethodGet, "/products", token, "")
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.EqualValues(t, 1, products[0]["id"])

	w = s.do(http.MethodDelete, "/products/1", token, "")
	assert.JSONEq(t, `{"message":"Product deleted"}`, w.Body.String())

	w = s.do(http.MethodGet, "/products/1", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, w.Body.String())

	w = s.do(http.MethodPost, "/products", token, `{"name":"NoPrice","categoryId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte(`shop_http_requests_total{method="GET",route="/health",status="200"} 1`)))
}
