package i

// Logger is the logging surface services depend on.
type Logger interface {
	Debug(string)
	Info(string)
	Warning(string)
	Error(string)
}
