// Package test contains helpers shared by test suites.
package test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/stretchr/testify/assert"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// DecodeError decodes an error response body and returns the message.
func DecodeError(t *testing.T, s []byte) string {
	var r httputil.HTTPError
	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}
