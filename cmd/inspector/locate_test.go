package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"locator-inspector/internal/config"
	"locator-inspector/internal/entity"
	"locator-inspector/internal/locator"
	"locator-inspector/internal/usecase"
)

const fixture = `<html><body>
<nav class="navbar"><a href="/home">Home</a></nav>
<iframe name="checkout" srcdoc="<form><input name='card' placeholder='Card number'></form>"></iframe>
</body></html>`

func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	return path
}

func newInspector() *usecase.InspectorService {
	return usecase.NewInspectorService(usecase.InspectorServiceParams{
		Config: &config.Config{},
		Logger: zap.NewNop(),
		Engine: locator.New(locator.DefaultThresholds(), zap.NewNop()),
	})
}

func TestRunLocate_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := locateOptions{file: writeFixture(t), target: "input", scope: "checkout", trigger: "context", json: true}

	require.NoError(t, runLocate(context.Background(), newInspector(), opts, &out))

	var got locateOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.Equal(t, entity.CategoryInput, got.Category)
	assert.Equal(t, `[placeholder="Card number"]`, got.CSS)
	assert.Equal(t, `//input[@placeholder="Card number"]`, got.XPath)
	assert.True(t, got.Unique)
	assert.Equal(t, entity.CopyPath, got.Copy)
	assert.Equal(t, "checkout", got.Hierarchy)
	require.Len(t, got.Context, 1)
	assert.Equal(t, entity.FrameKindFrame, got.Context[0].Kind)
	assert.NotEmpty(t, got.Snapshot)
}

func TestRunLocate_Table(t *testing.T) {
	var out bytes.Buffer
	opts := locateOptions{file: writeFixture(t), target: "a", trigger: "hover"}

	require.NoError(t, runLocate(context.Background(), newInspector(), opts, &out))

	assert.Contains(t, out.String(), `[href="/home"]`)
	assert.Contains(t, out.String(), `//a[contains(text(),"Home")]`)
}

func TestRunLocate_MissingFile(t *testing.T) {
	opts := locateOptions{file: filepath.Join(t.TempDir(), "absent.html"), target: "a"}

	err := runLocate(context.Background(), newInspector(), opts, &bytes.Buffer{})

	assert.ErrorContains(t, err, "open snapshot")
}

func TestLocateCmd_ValidatesFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no target", []string{"locate", "--file", "page.html"}, "--target is required"},
		{"no source", []string{"locate", "--target", "a"}, "exactly one of --file or --url"},
		{"both sources", []string{"locate", "--target", "a", "--file", "x.html", "--url", "https://a.test"}, "exactly one of --file or --url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			assert.ErrorContains(t, err, tt.want)
		})
	}
}
