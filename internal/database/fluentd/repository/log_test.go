package repository

import (
	"context"
	"errors"
	"testing"

	"backoffice/config"
	"backoffice/internal/core"
	"backoffice/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posted struct {
	tag     string
	message map[string]any
}

type fakePoster struct {
	posts []posted
	err   error
}

func (p *fakePoster) Post(_ context.Context, tag string, message any) error {
	if p.err != nil {
		return p.err
	}
	p.posts = append(p.posts, posted{tag: tag, message: message.(map[string]any)})
	return nil
}

func (p *fakePoster) Close() error {
	return nil
}

func TestLogEmployeeAuditUsesJSONFieldNames(t *testing.T) {
	poster := &fakePoster{}
	conf := &config.Configuration{}
	conf.App.Version = "2.3.0"
	repository := NewLogRepository(conf, poster)

	err := repository.LogEmployeeAudit(context.Background(), model.EmployeeAudit{
		Action:        "update",
		EmployeeID:    11,
		Actor:         "jana",
		WorkplaceKind: "supermarket",
		WorkplaceID:   1,
	})
	require.NoError(t, err)

	require.Len(t, poster.posts, 1)
	post := poster.posts[0]
	assert.Equal(t, string(core.FluentdEmployeeAudit), post.tag)
	assert.Equal(t, "update", post.message["action"])
	assert.Equal(t, float64(11), post.message["employee_id"])
	assert.Equal(t, "2.3.0", post.message["version"])
	assert.NotEmpty(t, post.message["logged_at"])
	assert.NotContains(t, post.message, "manager_id")
}

func TestLogRequestDefaultsVersion(t *testing.T) {
	poster := &fakePoster{}
	repository := NewLogRepository(&config.Configuration{}, poster)

	require.NoError(t, repository.LogRequest(context.Background(), model.RequestLog{RequestID: "r1", Path: "/api/employees"}))
	require.Len(t, poster.posts, 1)
	assert.Equal(t, string(core.FluentdRequest), poster.posts[0].tag)
	assert.Equal(t, "1.0.0", poster.posts[0].message["version"])
}

func TestLogPropagatesPosterError(t *testing.T) {
	poster := &fakePoster{err: errors.New("fluentd unreachable")}
	repository := NewLogRepository(&config.Configuration{}, poster)

	err := repository.LogResponse(context.Background(), model.ResponseLog{RequestID: "r1", Code: 20000})
	assert.EqualError(t, err, "fluentd unreachable")
}
