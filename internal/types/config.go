package types

import (
	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	"github.com/samber/lo"
)

type RunMode string

const (
	// ModeLocal runs the API server and the event router against in-memory storage
	ModeLocal RunMode = "local"
	// ModeAPI runs the API server and the event router against postgres
	ModeAPI RunMode = "api"
	// ModeAWSLambdaAPI runs the API server behind the AWS Lambda API Gateway proxy
	ModeAWSLambdaAPI RunMode = "aws_lambda_api"
)

func (m RunMode) Validate() error {
	allowed := []RunMode{ModeLocal, ModeAPI, ModeAWSLambdaAPI}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid run mode").
			WithHintf("Run mode must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
