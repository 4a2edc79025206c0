package environment

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvironmentService struct {
	baseURL       string
	port          string
	trailsDir     string
	datasetFile   string
	geoJSONFile   string
	parksFile     string
	seasonFile    string
	trackPolicy   string
	downsample    string
	sampleTarget  int
	otlpEndpoint  string
	traceStdout   bool
	publishBucket string
	publishPrefix string
	s3Endpoint    string
	s3Region      string
	s3AccessKey   string
	s3SecretKey   string
	env           Environment
}

type Environment int

const (
	Local Environment = iota
	Production
)

func (e Environment) String() string {
	switch e {
	case Local:
		return "Local"
	case Production:
		return "Production"
	default:
		return "Unknown"
	}
}

func NewEnvironmentService() (*EnvironmentService, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	env := &EnvironmentService{}
	if err := env.load(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return env, nil
}

func (e *EnvironmentService) load() error {
	e.baseURL = e.getEnvOrDefault("BASE_URL", "http://localhost:6900")
	e.port = e.getEnvOrDefault("PORT", "6900")

	e.trailsDir = e.getEnvOrDefault("TRAILS_DIR", "./static/trails")
	e.datasetFile = e.getEnvOrDefault("DATASET_FILE", "./static/data/trails.json")
	e.geoJSONFile = e.getEnvOrDefault("GEOJSON_FILE", "./static/data/trails.geojson")
	e.parksFile = e.getEnvOrDefault("PARKS_FILE", "./data/parks.yaml")
	e.seasonFile = e.getEnvOrDefault("SEASON_FILE", "./data/snowboarding.yaml")
	e.trackPolicy = e.getEnvOrDefault("TRACK_POLICY", "first")
	e.downsample = e.getEnvOrDefault("DOWNSAMPLE", "stride")

	target, err := e.getEnvAsInt("SAMPLE_TARGET", 200)
	if err != nil {
		return fmt.Errorf("SAMPLE_TARGET: %w", err)
	}
	if target < 1 {
		return fmt.Errorf("SAMPLE_TARGET must be positive, got %d", target)
	}
	e.sampleTarget = target

	e.otlpEndpoint = e.getEnvOrDefault("OTLP_ENDPOINT", "")
	e.traceStdout = e.getEnvAsBool("TRACE_STDOUT", false)

	e.publishBucket = e.getEnvOrDefault("PUBLISH_BUCKET", "")
	e.publishPrefix = e.getEnvOrDefault("PUBLISH_PREFIX", "data")
	e.s3Endpoint = e.getEnvOrDefault("S3_ENDPOINT", "")
	e.s3Region = e.getEnvOrDefault("S3_REGION", "us-east-1")
	e.s3AccessKey = e.getEnvOrDefault("S3_ACCESS_KEY", "")
	e.s3SecretKey = e.getEnvOrDefault("S3_SECRET_KEY", "")

	envString := e.getEnvOrDefault("ENV", "local")
	if envString == "production" {
		e.env = Production
	} else {
		e.env = Local
	}

	return nil
}

func (e *EnvironmentService) getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (e *EnvironmentService) getEnvAsInt(key string, defaultValue int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		return strconv.Atoi(value)
	}
	return defaultValue, nil
}

func (e *EnvironmentService) getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// Getter methods
func (e *EnvironmentService) GetBaseURL() string {
	return e.baseURL
}

func (e *EnvironmentService) GetDomain() string {
	parsedURL, err := url.Parse(e.baseURL)
	if err != nil {
		return ""
	}
	return parsedURL.Hostname()
}

func (e *EnvironmentService) GetPort() string {
	return e.port
}

func (e *EnvironmentService) GetTrailsDir() string {
	return e.trailsDir
}

func (e *EnvironmentService) GetDatasetFile() string {
	return e.datasetFile
}

func (e *EnvironmentService) GetGeoJSONFile() string {
	return e.geoJSONFile
}

func (e *EnvironmentService) GetParksFile() string {
	return e.parksFile
}

func (e *EnvironmentService) GetSeasonFile() string {
	return e.seasonFile
}

func (e *EnvironmentService) GetTrackPolicy() string {
	return e.trackPolicy
}

func (e *EnvironmentService) GetDownsample() string {
	return e.downsample
}

func (e *EnvironmentService) GetSampleTarget() int {
	return e.sampleTarget
}

func (e *EnvironmentService) GetOTLPEndpoint() string {
	return e.otlpEndpoint
}

func (e *EnvironmentService) GetTraceStdout() bool {
	return e.traceStdout
}

func (e *EnvironmentService) GetPublishBucket() string {
	return e.publishBucket
}

func (e *EnvironmentService) GetPublishPrefix() string {
	return e.publishPrefix
}

func (e *EnvironmentService) GetS3Endpoint() string {
	return e.s3Endpoint
}

func (e *EnvironmentService) GetS3Region() string {
	return e.s3Region
}

func (e *EnvironmentService) GetS3AccessKey() string {
	return e.s3AccessKey
}

func (e *EnvironmentService) GetS3SecretKey() string {
	return e.s3SecretKey
}

func (e *EnvironmentService) GetEnv() Environment {
	return e.env
}
