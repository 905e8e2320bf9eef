package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultWorkerCount     = 3
	defaultProcessingDelay = 2 * time.Second
)

// WorkerEnv is everything the worker reads from the environment.
type WorkerEnv struct {
	DBUrl           string
	RabbitMQUrl     string
	R2              R2Config
	GoogleApiKey    string
	WorkerCount     int
	ProcessingDelay time.Duration
	ParseDocuments  bool
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("empty %s in environment", key)
	}
	return v, nil
}

func LoadWorkerEnv() (WorkerEnv, error) {
	var env WorkerEnv
	var err error

	if env.DBUrl, err = requireEnv("DB_URL"); err != nil {
		return env, err
	}
	if env.RabbitMQUrl, err = requireEnv("RABBITMQ_URL"); err != nil {
		return env, err
	}
	if env.R2.AccountID, err = requireEnv("R2_ACCCOUNT_ID"); err != nil {
		return env, err
	}
	if env.R2.Bucket, err = requireEnv("R2_BUCKET"); err != nil {
		return env, err
	}
	if env.R2.SecretKey, err = requireEnv("R2_SECRET_KEY"); err != nil {
		return env, err
	}
	if env.R2.AccessKey, err = requireEnv("R2_ACCESS_KEY"); err != nil {
		return env, err
	}

	// optional
	env.GoogleApiKey = os.Getenv("GOOGLE_API_KEY")

	env.WorkerCount = defaultWorkerCount
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return env, fmt.Errorf("invalid WORKER_COUNT %q: must be a positive integer", v)
		}
		env.WorkerCount = n
	}

	env.ProcessingDelay = defaultProcessingDelay
	if v := os.Getenv("PROCESSING_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return env, fmt.Errorf("invalid PROCESSING_DELAY %q: must be a non-negative duration", v)
		}
		env.ProcessingDelay = d
	}

	if v := os.Getenv("PARSE_DOCUMENTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return env, fmt.Errorf("invalid PARSE_DOCUMENTS %q: %w", v, err)
		}
		env.ParseDocuments = b
	}

	return env, nil
}
