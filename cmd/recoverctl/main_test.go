package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-recovery/internal/guide"
	"domain-recovery/internal/services"
	"domain-recovery/internal/status"
	"domain-recovery/internal/valuation"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestValueCmd(t *testing.T) {
	out, err := execute(t, "", "value", "Lumora.com", "-o", "json")
	require.NoError(t, err)
	var v valuation.Valuation
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "lumora.com", v.Domain)
	assert.Len(t, v.Factors, 7)

	out, err = execute(t, "", "value", "lumora.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lumora.com: Grade "), out)
}

func TestClassifyCmd(t *testing.T) {
	out, err := execute(t, "", "classify", "google.com", "-o", "json")
	require.NoError(t, err)
	var c classifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.True(t, c.Classification.IsMajorBrand())

	out, err = execute(t, "", "classify", "google.com")
	require.NoError(t, err)
	assert.Contains(t, out, "tier 1 (MAJOR_BRAND)")
}

func TestEmailCmd(t *testing.T) {
	out, err := execute(t, "", "email", guide.TemplateRedemptionRestore, "lumora.com", "--registrar", "Namecheap")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Redemption restore request for lumora.com")
	assert.Contains(t, out, "Hello Namecheap support")

	_, err = execute(t, "", "email", "nope", "lumora.com")
	assert.ErrorIs(t, err, guide.ErrUnknownTemplate)
}

func TestTemplatesCmd(t *testing.T) {
	out, err := execute(t, "", "templates")
	require.NoError(t, err)
	assert.Equal(t, guide.TemplateKeys(), strings.Fields(out))
}

func TestEvaluateCmd(t *testing.T) {
	expiry := time.Now().AddDate(0, 0, -80).UTC().Format(time.RFC3339)
	doc := fmt.Sprintf(`{"domain":"lumora.com","registration":{"registrar":"NameCheap, Inc.","expires_at":%q}}`, expiry)

	out, err := execute(t, doc, "evaluate", "--emergency", "-o", "json")
	require.NoError(t, err)
	var res services.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, status.StatePendingDelete, res.Report.State)
	assert.True(t, res.Guide.Emergency)

	path := filepath.Join(t.TempDir(), "signals.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	out, err = execute(t, "", "evaluate", "--file", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lumora.com: PENDING_DELETE"), out)
}

func TestCmdErrors(t *testing.T) {
	_, err := execute(t, "", "value", "nodot")
	assert.Error(t, err)

	_, err = execute(t, "", "value", "lumora.com", "-o", "yaml")
	assert.ErrorContains(t, err, "unsupported output")

	_, err = execute(t, "not json", "evaluate")
	assert.ErrorContains(t, err, "decode signals")

	_, err = execute(t, "", "analyze")
	assert.Error(t, err)
}

func TestMergeContext(t *testing.T) {
	got := mergeContext(guide.Context{LostCredentials: true}, guide.Context{EmergencyMode: true})
	assert.Equal(t, guide.Context{LostCredentials: true, EmergencyMode: true}, got)
}
