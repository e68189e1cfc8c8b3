package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRequestAliasesAcceptStringOrObject(t *testing.T) {
	payload := `{
		"title": "Password Reset",
		"body": "steps",
		"publishedYear": 2025,
		"tenantId": 1,
		"aliases": ["pw reset", {"text": "reboot"}]
	}`

	var req articleRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	require.Len(t, req.Aliases, 2)
	assert.Equal(t, "pw reset", req.Aliases[0].Text)
	assert.Equal(t, "reboot", req.Aliases[1].Text)
}

func TestArticleRequestRejectsNonStringAlias(t *testing.T) {
	var req articleRequest
	err := json.Unmarshal([]byte(`{"aliases":[42]}`), &req)

	assert.Error(t, err)
}
