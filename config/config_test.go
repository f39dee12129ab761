package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("NTS_DATA_DIR", "")
	c, err := New("")
	require.NoError(t, err)
	require.Equal(t, "nts", c.AppName)
	require.Equal(t, StoreFile, c.CredentialStore)
	require.Equal(t, "http://localhost:8081/save-note", c.SaveURL)
	require.Equal(t, 16, c.ScryptLogN)
	require.Equal(t, 1, c.KDFWorkers)
	require.Equal(t, 30*time.Second, c.HTTPTimeout)
	require.Zero(t, c.SubmitRate)
	require.Equal(t, 20, c.ImportMaxLogN)
	require.Equal(t, "nts", filepath.Base(c.DataDir))
}

func TestEnvFileUnderEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"NTS_CREDENTIAL_STORE=memory\nNTS_SCRYPT_LOG_N=8\nNTS_SAVE_URL=http://file/save\n"), 0600))
	t.Setenv("NTS_SAVE_URL", "http://env/save")
	c, err := New(path)
	require.NoError(t, err)
	require.Equal(t, StoreMemory, c.CredentialStore)
	require.Equal(t, 8, c.ScryptLogN)
	require.Equal(t, "http://env/save", c.SaveURL)

	c, err = New(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "http://env/save", c.SaveURL)
}

func TestValidate(t *testing.T) {
	for k, v := range map[string]string{
		"NTS_CREDENTIAL_STORE": "floppy",
		"NTS_SCRYPT_LOG_N":     "23",
		"NTS_KDF_WORKERS":      "0",
		"NTS_HTTP_TIMEOUT":     "-1s",
		"NTS_SUBMIT_RATE":      "-2",
		"NTS_IMPORT_MAX_LOG_N": "23",
	} {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := New("")
			require.Error(t, err)
		})
	}
}

func TestPrintEnvAndUsage(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	var buf bytes.Buffer
	c.PrintEnv(&buf)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "#!/usr/bin/env bash\n"))
	require.Contains(t, out, "export NTS_SCRYPT_LOG_N=16\n")
	require.Contains(t, out, "export NTS_CREDENTIAL_STORE=file\n")
	buf.Reset()
	Usage(&buf)
	require.Contains(t, buf.String(), "NTS_SAVE_URL")
}
