package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/eperalta/filedrawer/internal/flagx"
	"github.com/eperalta/filedrawer/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	Production              bool           `json:"production"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	SessionSweepInterval    timex.Duration `json:"session_sweep_interval"`
	MaxUploadBytes          int64          `json:"max_upload_bytes"`
	BlobRequestTimeout      timex.Duration `json:"blob_request_timeout"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. Unreadable or invalid files
// panic, since the server cannot start half-configured.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.Production = c.Production
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.SessionSweepInterval = time.Duration(c.SessionSweepInterval.Duration)
	config.MaxUploadBytes = c.MaxUploadBytes
	config.BlobRequestTimeout = time.Duration(c.BlobRequestTimeout.Duration)
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
