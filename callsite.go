package zenlog

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const unknownFunction = "unknown"

// CallSite is the source location a log call is attributed to. The logger
// captures one per call with runtime.Callers; instrumentation layers that
// know better can pass their own through Logger.LogAt.
type CallSite struct {
	// File is the base name of the source file.
	File string
	// Path is the full source path.
	Path string
	Line int
	// Function is the package-relative function name, receiver and closure
	// suffixes included: "(*Server).handle", "run.func1".
	Function string
	// WrapFunc is the named function enclosing the call: "handle", "run".
	WrapFunc string
	// Module is the import path of the calling package.
	Module string
}

// Caller returns the CallSite skip frames above the function calling
// Caller. Caller(0) describes the caller itself.
func Caller(skip int) CallSite {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return unknownCallSite()
	}
	return callSiteFor(pc, file, line)
}

// CurrentFn returns the name of the calling function without package path,
// receiver or closure suffix. If the caller cannot be determined it returns
// "unknown".
//
//	l := zenlog.Ctx(ctx).With("fn", zenlog.CurrentFn())
func CurrentFn() string {
	return Caller(1).WrapFunc
}

func unknownCallSite() CallSite {
	return CallSite{
		File:     unknownFunction,
		Function: unknownFunction,
		WrapFunc: unknownFunction,
		Module:   unknownFunction,
	}
}

func callSiteFor(pc uintptr, file string, line int) CallSite {
	site := unknownCallSite()
	if file != "" {
		site.File = filepath.Base(file)
		site.Path = file
	}
	site.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Module, site.Function, site.WrapFunc = splitFunctionName(fn.Name())
	}
	return site
}

// callSiteOutside walks the stack and returns the first frame whose function
// does not start with one of prefixes. Bridges such as LogLogger use it to
// skip the frames of the package they adapt.
func callSiteOutside(skip int, prefixes ...string) CallSite {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return unknownCallSite()
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !hasAnyPrefix(frame.Function, prefixes) {
			site := unknownCallSite()
			site.File = filepath.Base(frame.File)
			site.Path = frame.File
			site.Line = frame.Line
			site.Module, site.Function, site.WrapFunc = splitFunctionName(frame.Function)
			return site
		}
		if !more {
			break
		}
	}
	return unknownCallSite()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// splitFunctionName splits a runtime function name such as
// "example.com/app/server.(*Server).handle.func1" into the package path,
// the package-relative name and the enclosing named function.
func splitFunctionName(name string) (module, function, wrapfunc string) {
	if name == "" {
		return unknownFunction, unknownFunction, unknownFunction
	}
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return unknownFunction, name, name
	}
	dot += slash + 1
	module, function = name[:dot], name[dot+1:]
	if function == "" {
		return module, unknownFunction, unknownFunction
	}

	parts := strings.Split(function, ".")
	end := len(parts)
	for end > 1 && isClosurePart(parts[end-1]) {
		end--
	}
	wrapfunc = parts[end-1]
	if strings.HasPrefix(wrapfunc, "(") || wrapfunc == "" {
		wrapfunc = unknownFunction
	}
	return module, function, wrapfunc
}

// isClosurePart reports whether p is a compiler-generated name segment:
// "func1", "2" (nested closures) or "gowrap1".
func isClosurePart(p string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if rest, ok := strings.CutPrefix(p, prefix); ok {
			p = rest
			break
		}
	}
	if p == "" {
		return false
	}
	_, err := strconv.Atoi(p)
	return err == nil
}
