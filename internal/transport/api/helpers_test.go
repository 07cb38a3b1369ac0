package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fsdevblog/hustlaa/internal/transport/api/testutils"
	"github.com/fsdevblog/hustlaa/internal/transport/api/tokens"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testJWTSecret = []byte("super secret key")

type requireT interface {
	require.TestingT
	Helper()
}

func userToken(t requireT, id int64, role string) string {
	t.Helper()
	token, err := tokens.GenerateUserJWT(id, role, time.Hour, testJWTSecret)
	require.NoError(t, err)
	return token
}

func withAuth(token string) func(*testutils.RequestOptions) {
	return testutils.WithBearer(token)
}

func withJSON() func(*testutils.RequestOptions) {
	return testutils.WithHeader("Content-Type", "application/json; charset=utf-8")
}

// decodeBody читает тело ответа в target и закрывает его.
func decodeBody(t requireT, res *http.Response, target any) {
	t.Helper()
	defer func() {
		require.NoError(t, res.Body.Close())
	}()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target), string(body))
}

type errorResponse struct {
	Error string `json:"error"`
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal equal to " + m.want.String()
}

func decimalEq(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}
