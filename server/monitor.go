package server

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/pprof"
)

// monitorHandler writes runtime information to the response.
func monitorHandler(runner TableRunner, version string, hasTLS bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := new(runtime.MemStats)
		runtime.ReadMemStats(m)
		p := pprof.Lookup("goroutine")
		w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Version", version)
		fmt.Fprintln(w)
		writeMemoryStats(w, m)
		fmt.Fprintln(w)
		writeTableStats(w, runner.NumLoaded())
		fmt.Fprintln(w)
		writeGoroutineExpectations(w, hasTLS)
		fmt.Fprintln(w)
		writeGoroutineStackTraces(w, p)
	}
}

// writeMemoryStats writes the memory runtime statistics of the server.
func writeMemoryStats(w io.Writer, m *runtime.MemStats) {
	fmt.Fprintln(w, "--- Memory Stats ---")
	fmt.Fprintln(w, "Alloc (bytes on heap)", m.Alloc)
	fmt.Fprintln(w, "TotalAlloc (total heap size)", m.TotalAlloc)
	fmt.Fprintln(w, "Sys (bytes used to run server)", m.Sys)
	fmt.Fprintln(w, "Live object count (Mallocs - Frees)", m.Mallocs-m.Frees)
}

// writeTableStats writes the number of tables with goroutines.
func writeTableStats(w io.Writer, numLoaded int) {
	fmt.Fprintln(w, "--- Table Stats ---")
	fmt.Fprintln(w, "Loaded tables", numLoaded)
}

// writeGoroutineExpectations writes a message about the expected goroutines.
func writeGoroutineExpectations(w io.Writer, hasTLS bool) {
	fmt.Fprintln(w, "--- Goroutine Expectations ---")
	fmt.Fprintln(w, "On an idling server, expect:")
	fmt.Fprintln(w, "* a goroutine listening for interrupt/termination signals so the server can stop gracefully")
	fmt.Fprintln(w, "* a goroutine to run the main procedure")
	fmt.Fprintln(w, "* a goroutine to run the http server")
	if hasTLS {
		fmt.Fprintln(w, "* a goroutine to handle each open tls connection")
	}
	fmt.Fprintln(w, "* a goroutine to write profiling information about goroutines")
	fmt.Fprintln(w, "Database drivers may run a few goroutines to manage their connections.")
	fmt.Fprintln(w, "Each loaded table runs on a single (1) goroutine until it is idle.")
}

// writeGoroutineStackTraces writes the goroutine runtime profile's stack traces.
func writeGoroutineStackTraces(w io.Writer, p *pprof.Profile) {
	fmt.Fprintln(w, "--- Goroutine Stack Traces ---")
	p.WriteTo(w, 1)
}
