package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	auth "github.com/stackmesh/go-auth"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: auth.Config{
				SigningKey: []byte("key"),
				TokenTTL:   30 * time.Minute,
			},
			wantErr: false,
		},
		{
			name:    "missing signing key",
			cfg:     auth.Config{TokenTTL: 30 * time.Minute},
			wantErr: true,
		},
		{
			name: "negative TTL",
			cfg: auth.Config{
				SigningKey: []byte("key"),
				TokenTTL:   -time.Minute,
			},
			wantErr: true,
		},
		{
			name:    "zero TTL falls back to default",
			cfg:     auth.Config{SigningKey: []byte("key")},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
