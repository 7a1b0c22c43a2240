package logger

import "go.uber.org/zap"

// NewNamed builds a zap logger appropriate for the environment and names it
// after the service so log lines from different binaries are distinguishable.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
