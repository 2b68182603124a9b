package logger

import "go.uber.org/zap"

// New returns a development logger when debug is set and a production
// logger otherwise. Entries go to stderr unless outputs names other zap
// sinks, such as file paths.
func New(debug bool, outputs ...string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	if len(outputs) > 0 {
		cfg.OutputPaths = outputs
	}
	raw, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return raw.Sugar(), nil
}

func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
