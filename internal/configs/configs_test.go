package configs

import (
	"testing"
)

func TestLoad(t *testing.T) {
	type args struct {
		configPath string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "should load the configuration file without errors",
			args: args{
				configPath: "./../../test/testdata/config_valid.json",
			},
			wantErr: false,
		},
		{
			name: "should not load the configuration because the file does not exist",
			args: args{
				configPath: "./../../test/testdata/missing.json",
			},
			wantErr: true,
		},
		{
			name: "should not load the configuration due to an invalid port",
			args: args{
				configPath: "./../../test/testdata/config_invalid_port.json",
			},
			wantErr: true,
		},
		{
			name: "should not load the configuration due to invalid private key material",
			args: args{
				configPath: "./../../test/testdata/config_invalid_private_key.json",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(tt.args.configPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if config.ServerPort() != 3000 {
				t.Errorf("server port is incorrect, got %d, want %d", config.ServerPort(), 3000)
			}
			if config.DatabaseDriver() != "postgres" {
				t.Errorf("database driver is incorrect, got %s, want %s", config.DatabaseDriver(), "postgres")
			}
			if key := config.PrivateKey(); key.N == nil {
				t.Error("private key was not loaded")
			}
		})
	}
}
