package storage

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/realestate-ads/config"
)

func TestMinioStore_URL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinioConfig
		key  string
		want string
	}{
		{
			name: "plain",
			cfg:  config.MinioConfig{Endpoint: "localhost:9000", Bucket: "announcements"},
			key:  "announcements/42/a.jpg",
			want: "http://localhost:9000/announcements/announcements/42/a.jpg",
		},
		{
			name: "tls",
			cfg:  config.MinioConfig{Endpoint: "cdn.example.com", Bucket: "media", UseSSL: true},
			key:  "x.png",
			want: "https://cdn.example.com/media/x.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newClient(tt.cfg)
			require.NoError(t, err)
			s := &MinioStore{client: client, bucket: tt.cfg.Bucket, logger: slog.Default()}
			assert.Equal(t, tt.want, s.URL(tt.key))
		})
	}
}

func TestNewClient_RejectsBadEndpoint(t *testing.T) {
	_, err := newClient(config.MinioConfig{Endpoint: "http://localhost:9000/path"})
	assert.Error(t, err)
}
