// Command attrenc encodes credential attribute values into the integer
// domain of a signature scheme, or serves the same encodings over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"github.com/vocdoni/davinci-attrenc/api"
	"github.com/vocdoni/davinci-attrenc/attribute"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/backends"
	"github.com/vocdoni/davinci-attrenc/log"
	"github.com/vocdoni/davinci-attrenc/service"
	"gopkg.in/yaml.v3"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log.Level, cfg.Log.Output, nil)
	log.Debugw("starting attrenc", "version", Version)

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Serve {
		serve(cfg)
		return
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Errorw(err, "encoding failed")
		os.Exit(1)
	}
}

// serve starts the API service and blocks until a termination signal
// arrives.
func serve(cfg *Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiSrv := service.NewAPI(api.APIConfig{
		Host:           cfg.API.Host,
		Port:           cfg.API.Port,
		DefaultBackend: cfg.Backend,
		Backends:       cfg.API.Backends,
		CacheSize:      cfg.Cache.Size,
	}, false)
	if err := apiSrv.Start(ctx); err != nil {
		log.Fatalf("Failed to start API service: %v", err)
	}
	defer apiSrv.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Infow("received signal, shutting down", "signal", sig.String())
}

// run executes the encoding requested by cfg and writes the results to out
// as indented JSON.
func run(cfg *Config, out io.Writer) error {
	if cfg.List {
		return writeJSON(out, listBackends())
	}
	b, err := backends.New(cfg.Backend)
	if err != nil {
		return err
	}
	enc, err := attribute.NewEncoder(b)
	if err != nil {
		return err
	}

	if cfg.Schema != "" {
		schema, err := attribute.LoadSchema(cfg.Schema)
		if err != nil {
			return err
		}
		values, err := loadValues(cfg.Values)
		if err != nil {
			return err
		}
		attrs, err := enc.EncodeSet(schema, values)
		if err != nil {
			return err
		}
		log.Infow("encoded attribute set", "backend", b.Type(), "schema", schema.Name, "attributes", len(attrs))
		return writeJSON(out, &api.EncodeSetResponse{
			Backend:    b.Type(),
			Schema:     schema.Name,
			Attributes: attrs,
		})
	}

	kind, err := attribute.ParseKind(cfg.Kind)
	if err != nil {
		return err
	}
	res := make([]*attribute.EncodedAttribute, 0, len(cfg.args))
	for _, raw := range cfg.args {
		el, err := enc.Encode(kind, raw)
		if err != nil {
			return err
		}
		res = append(res, attribute.NewEncodedAttribute(raw, kind, el))
	}
	return writeJSON(out, res)
}

// loadValues reads a YAML or JSON map of attribute names to their textual
// values. Scalars keep their original text.
func loadValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values %s: %w", path, err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing values %s: %w", path, err)
	}
	return values, nil
}

func listBackends() *api.BackendsResponse {
	resp := &api.BackendsResponse{Kinds: attribute.Kinds()}
	for _, name := range backends.Backends() {
		b, err := backends.New(name)
		if err != nil {
			log.Warnw("skipping backend", "backend", name, "error", err)
			continue
		}
		enc, err := attribute.NewEncoder(b)
		if err != nil {
			log.Warnw("skipping backend", "backend", name, "error", err)
			continue
		}
		resp.Backends = append(resp.Backends, api.NewBackendInfo(enc, name == backends.Default))
	}
	return resp
}

func writeJSON(out io.Writer, v any) error {
	e := json.NewEncoder(out)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
