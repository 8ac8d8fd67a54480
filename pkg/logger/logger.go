package logger

// Logger is the small logging surface the services depend on, so tests can
// swap in a no-op and the app can swap in zerolog.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
