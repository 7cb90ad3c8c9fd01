package capnslog

import "log"

// logBridge redirects the standard library's default logger into capnslog,
// so third-party code that only knows about "log" still goes through the
// same formatter/level machinery as this repo's own packages.
type logBridge struct {
	pkg *packageLogger
}

func (b logBridge) Write(p []byte) (int, error) {
	if b.pkg.level < INFO {
		return len(p), nil
	}
	s := string(p)
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	b.pkg.internalLog(calldepth+1, INFO, BaseLogEntry(s))
	return len(p), nil
}

func init() {
	log.SetFlags(0)
	log.SetOutput(logBridge{pkg: NewPackageLogger("log", "log")})
}
