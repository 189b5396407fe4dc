package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/env"
	"gotest.tools/v3/fs"
)

func TestLoad_Defaults(t *testing.T) {
	defer env.Patch(t, "CONFIG_FILE", "")()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, QueueMemory, cfg.QueueBackend)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 5*time.Second, cfg.WorkerPollTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	file := fs.NewFile(t, "ingest-config", fs.WithContent(`
port: "7000"
workers: 2
workerPollTimeout: 250ms
storageBackend: minio
minio:
  endpoint: localhost:9000
  bucket: cv
  useSsl: true
queueBackend: redis
redis:
  addr: redis:6379
`))
	defer file.Remove()
	defer env.PatchAll(t, map[string]string{
		"CONFIG_FILE": file.Path(),
		"WORKERS":     "8",
		"REDIS_DB":    "3",
	})()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.WorkerPollTimeout)
	assert.Equal(t, StorageMinio, cfg.StorageBackend)
	assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
	assert.Equal(t, "cv", cfg.Minio.Bucket)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "ingest:resumes", cfg.Redis.QueueKey, "unset keys keep their default")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "log format", env: map[string]string{"LOG_FORMAT": "xml"}, want: "LogFormat"},
		{name: "workers", env: map[string]string{"WORKERS": "0"}, want: "Workers"},
		{name: "storage backend", env: map[string]string{"STORAGE_BACKEND": "s3"}, want: "StorageBackend"},
		{name: "minio without endpoint", env: map[string]string{"STORAGE_BACKEND": "minio"}, want: "MINIO_ENDPOINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.env["CONFIG_FILE"] = ""
			defer env.PatchAll(t, tt.env)()

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_BadFile(t *testing.T) {
	file := fs.NewFile(t, "ingest-config", fs.WithContent("port: [unclosed"))
	defer file.Remove()
	defer env.Patch(t, "CONFIG_FILE", file.Path())()

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")

	defer env.Patch(t, "CONFIG_FILE", file.Path()+".missing")()
	_, err = Load()
	assert.ErrorContains(t, err, "read config file")
}
