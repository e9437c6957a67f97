package config

import (
	"os"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// DetectServerless reads the Lambda runtime environment
func DetectServerless() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// DeploymentMode returns the current deployment mode
func (s *ServerlessConfig) DeploymentMode() string {
	if s.IsLambda {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(config *Config, sc *ServerlessConfig) *Config {
	if sc == nil || !sc.IsLambda {
		return config
	}

	// CloudWatch indexes one JSON object per line
	config.Log.Format = "json"

	// An in-memory table does not survive between invocations
	if config.Storage.Backend == "memory" && !GetEnvAsBool("ALLOW_MEMORY_BACKEND", false) {
		config.Storage.Backend = "dynamodb"
	}

	if config.Storage.Region == "" {
		config.Storage.Region = sc.Region
	}

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	config = AdaptConfigForServerless(config, DetectServerless())
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
