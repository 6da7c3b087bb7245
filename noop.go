package zenlog

type noopLogger struct{}

func (noopLogger) Debug(...any)                    {}
func (noopLogger) Info(...any)                     {}
func (noopLogger) Success(...any)                  {}
func (noopLogger) Warning(...any)                  {}
func (noopLogger) Error(...any)                    {}
func (noopLogger) Lethal(...any)                   {}
func (noopLogger) Log(Level, ...any)               {}
func (noopLogger) LogAt(CallSite, Level, ...any)   {}
func (n noopLogger) With(...any) Logger            { return n }
func (n noopLogger) WithSeparator(string) Logger   { return n }
func (n noopLogger) LogLevel(Level) Logger         { return n }
func (n noopLogger) LogLevelFromEnv(string) Logger { return n }

// Noop returns a Logger that discards everything.
func Noop() Logger {
	return noopLogger{}
}
