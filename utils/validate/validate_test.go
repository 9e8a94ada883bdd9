package validate

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	cErr "backoffice/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, method, target string, body []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestParseID(t *testing.T) {
	c := newContext(t, http.MethodGet, "/employees/12", nil)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, cause, respErr := ParseID(c, "id")
	require.NoError(t, cause)
	require.NoError(t, respErr)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"abc", "0", "-4"} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, cause, respErr = ParseID(c, "id")
		assert.Error(t, cause, raw)
		appErr, ok := respErr.(*cErr.Error)
		require.True(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, appErr.HttpCode())
	}
}

func TestBindAndValidateReportsJSONFieldNames(t *testing.T) {
	type payload struct {
		PositionID int64 `json:"positionId" binding:"omitempty,min=1"`
	}
	c := newContext(t, http.MethodPost, "/", []byte(`{"positionId": -3}`))
	var req payload
	cause, respErr := BindAndValidate(c, &req)
	require.Error(t, cause)
	appErr, ok := respErr.(*cErr.Error)
	require.True(t, ok)
	assert.Contains(t, appErr.ErrorDesc(), `"positionId"`)
	assert.Contains(t, appErr.ErrorDesc(), "'min'")
}

type nestedPayload struct {
	Workplace struct {
		Kind string `json:"kind" binding:"oneof=none supermarket"`
	} `json:"workplace"`
	Name  string   `json:"name" binding:"max=3"`
	Clear []string `json:"clear" binding:"omitempty,dive,oneof=salary"`
}

func (nestedPayload) Messages() map[string]string {
	return map[string]string{
		"workplace.kind.oneof": "workplace kind must be none or supermarket",
		"clear.oneof":          "clear accepts salary only",
	}
}

func TestBindAndValidateNestedFieldsAndMessages(t *testing.T) {
	c := newContext(t, http.MethodPost, "/", []byte(`{"workplace":{"kind":"office"},"name":"toolong","clear":["salary","hireDate"]}`))
	var req nestedPayload
	cause, respErr := BindAndValidate(c, &req)
	require.Error(t, cause)
	desc := respErr.(*cErr.Error).ErrorDesc()
	assert.Contains(t, desc, "workplace kind must be none or supermarket")
	assert.Contains(t, desc, `"name" (type: string) failed the 'max'`)
	assert.Contains(t, desc, "clear accepts salary only")
}

func TestQueryHelpers(t *testing.T) {
	c := newContext(t, http.MethodGet, "/?limit=25&wait=true&bad=x", nil)
	n, err := GetInt64Query(c, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), n)

	n, err = GetInt64Query(c, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	_, err = GetInt64Query(c, "bad", 0)
	assert.Error(t, err)

	assert.True(t, GetBoolQuery(c, "wait", false))
	assert.True(t, GetBoolQuery(c, "bad", true))
}
