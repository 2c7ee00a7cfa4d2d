package log

import (
	"go.uber.org/zap"
)

var base = zap.NewNop()

// Init builds the process logger once at startup. prod selects the JSON
// production config, otherwise the console development config is used.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	base = l
	return l, nil
}

// L returns the process logger (a nop logger before Init).
func L() *zap.Logger { return base }
