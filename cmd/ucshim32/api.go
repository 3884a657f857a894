package main

import (
	"context"
	"sync"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/config"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/logging"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

// api is the state behind the flat exports: one lazily built Shim and the
// process-wide last-error slot. Every status-returning call clears the slot
// first and records its own message on the way out.
type api struct {
	once    sync.Once
	shim    *shim.Shim
	newShim func() *shim.Shim
	slot    shim.ErrorSlot
}

var lib = &api{newShim: loadShim}

// loadShim reads ucshim.yaml from the DLL's own directory, falling back to
// built-in defaults when there is no usable file.
func loadShim() *shim.Shim {
	log := logging.Configure(logging.ProfileLibrary).With().Str("component", "dll").Logger()

	var dirs []string
	if dir, err := shim.ModuleDir(); err == nil {
		dirs = append(dirs, dir)
	} else {
		log.Warn().Err(err).Msg("locating install directory")
	}

	cfg, err := config.LoadFrom(dirs...)
	if err != nil {
		log.Warn().Err(err).Msg("using default configuration")
		cfg = config.Defaults()
	}
	return shim.New(cfg.Tool, shim.WithLogger(log))
}

// get builds the Shim on first use. A panic while loading falls back to the
// built-in defaults so later calls still have a Shim to use.
func (a *api) get() *shim.Shim {
	a.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				l := logging.L()
				l.Error().Interface("panic", r).Msg("loading shim, using defaults")
				a.shim = shim.New(config.Defaults().Tool)
			}
		}()
		a.shim = a.newShim()
	})
	return a.shim
}

// call runs one status-returning entry point. The slot is cleared first and
// holds fn's message afterwards; a panic becomes StatusError so nothing
// unwinds into the host.
func (a *api) call(fn func(s *shim.Shim) types.Result) (st types.Status) {
	a.slot.Clear()
	defer func() {
		if r := recover(); r != nil {
			st = a.slot.Record(types.Errored("Exception: %v", r)).Status
		}
	}()
	return a.slot.Record(fn(a.get())).Status
}

func (a *api) convertDocument(input, output, inputFormat, outputFormat string) types.Status {
	req := types.Request{
		InputPath:    input,
		OutputPath:   output,
		InputFormat:  inputFormat,
		OutputFormat: outputFormat,
	}
	return a.call(func(s *shim.Shim) types.Result {
		return s.Convert(context.Background(), req)
	})
}

func (a *api) convertPair(p shim.Pair, input, output string) types.Status {
	return a.call(func(s *shim.Shim) types.Result {
		return s.ConvertPair(context.Background(), p, input, output)
	})
}

func (a *api) testConnection() types.Status {
	return a.call(func(s *shim.Shim) types.Result {
		return s.TestConnection(context.Background())
	})
}

func (a *api) convertBatch(inputDir, outputDir, inputFormat, outputFormat string) types.Status {
	return a.call(func(s *shim.Shim) types.Result {
		return s.ConvertBatch(inputDir, outputDir, inputFormat, outputFormat)
	})
}

func (a *api) fileInfo(path string, buf []byte) types.Status {
	return a.call(func(*shim.Shim) types.Result {
		return shim.FormatFileInfo(path, buf)
	})
}

func (a *api) lastError() string {
	return a.slot.Get()
}
