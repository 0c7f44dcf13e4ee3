package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func sign(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/r", RequireAuth(secret), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequireAuth(t *testing.T) {
	valid := sign(t, jwt.MapClaims{"scope": "reports", "exp": time.Now().Add(time.Hour).Unix()}, secret)
	expired := sign(t, jwt.MapClaims{"scope": "reports", "exp": time.Now().Add(-time.Hour).Unix()}, secret)
	wrongKey := sign(t, jwt.MapClaims{"scope": "reports"}, []byte("other"))
	wrongScope := sign(t, jwt.MapClaims{"scope": "orders"}, secret)

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bad format", "Token " + valid, "", http.StatusUnauthorized},
		{"bearer", "Bearer " + valid, "", http.StatusOK},
		{"cookie", "", valid, http.StatusOK},
		{"expired", "Bearer " + expired, "", http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, "", http.StatusUnauthorized},
		{"wrong scope", "Bearer " + wrongScope, "", http.StatusForbidden},
	}
	r := newRouter()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/r", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tc.cookie})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: status=%d want %d", tc.name, w.Code, tc.want)
		}
	}
}
