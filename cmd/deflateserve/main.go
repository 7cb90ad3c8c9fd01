// Command deflateserve runs an HTTP service that decompresses a posted
// zlib-wrapped DEFLATE body and returns the decompressed bytes.
package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-forensics/deflate/capnslog"
	"github.com/go-forensics/deflate/digest"
	"github.com/go-forensics/deflate/flate"
	"github.com/go-forensics/deflate/flagutil"
	"github.com/go-forensics/deflate/httputil"
	"github.com/go-forensics/deflate/stop"
	"github.com/go-forensics/deflate/yamlutil"
)

var plog = capnslog.NewPackageLogger("github.com/go-forensics/deflate", "deflateserve")

const maxRequestBody = 64 << 20

func main() {
	var listenIP flagutil.IPv4Flag
	flag.Var(&listenIP, "listen", "address to listen on")
	port := flag.String("port", "8080", "port to listen on")
	configPath := flag.String("config", "", "optional YAML config file")
	strictTrailer := flag.Bool("strict-trailer", false, "fail if the Adler-32 trailer is short or absent")
	flag.Parse()

	if jf, err := capnslog.NewJournaldFormatter(); err == nil {
		capnslog.SetFormatter(jf)
	} else {
		capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))
	}

	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			plog.Fatalf("read config %s: %v", *configPath, err)
		}
		if err := yamlutil.SetFlagsFromYaml(flag.CommandLine, raw); err != nil {
			plog.Fatalf("parse config %s: %v", *configPath, err)
		}
	}

	host := "0.0.0.0"
	if listenIP.IP() != nil {
		host = listenIP.IP().String()
	}
	addr := host + ":" + *port

	mux := http.NewServeMux()
	mux.HandleFunc("/decompress", decompressHandler(*strictTrailer))
	handler := &httputil.LoggingMiddleware{Next: mux}

	server := &http.Server{Addr: addr, Handler: handler}
	group := stop.NewGroup()
	group.AddFunc(func() <-chan struct{} {
		done := make(chan struct{})
		go func() {
			defer close(done)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		}()
		return done
	})

	go func() {
		plog.Infof("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			plog.Errorf("serve: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	plog.Infof("shutting down")
	<-group.Stop()
}

func decompressHandler(strictTrailer bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		compressed, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(compressed) > maxRequestBody {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		output := make([]byte, maxRequestBody)
		n, err := flate.Decode(compressed, output, &flate.Options{
			Trace:         plog,
			StrictTrailer: strictTrailer,
		})
		if err != nil {
			statusForDecodeError(w, err)
			return
		}

		w.Header().Set("X-Content-Blake2b-256", digest.Sum256(output[:n]))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(output[:n])
	}
}

func statusForDecodeError(w http.ResponseWriter, err error) {
	if de, ok := err.(*flate.DecodeError); ok && de.Kind == flate.OutputOverflow {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, err.Error(), http.StatusUnprocessableEntity)
}
