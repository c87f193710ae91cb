// Package engine composes the list virtualizer and the input correction
// engines into one install/detach pair.
package engine

import (
	"io"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/click"
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	"github.com/Akashdeep-Patra/modpanel/internal/virtual"
	"github.com/Akashdeep-Patra/modpanel/internal/wheel"
	"github.com/charmbracelet/log"
)

// Options configures Install.
type Options struct {
	Scale  geom.ScaleProvider
	Frames virtual.FrameScheduler
	Now    func() time.Time
	Logger *log.Logger

	Virtual virtual.Options
	Click   click.Options
}

// Engine is an installed set of engines.
type Engine struct {
	Virtualizer *virtual.Virtualizer
	Corrector   *click.Corrector
	Wheels      []*wheel.Normalizer

	log      *log.Logger
	detached bool
}

// Install registers every list with a new virtualizer attached to store,
// installs a wheel normalizer on each list container, and installs the
// click corrector on doc. Shared options (scale, frames, clock, logger)
// override the per-engine ones.
func Install(doc any, store *rows.Store, lists []*virtual.List, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vo := opts.Virtual
	vo.Scale, vo.Frames, vo.Now = opts.Scale, opts.Frames, opts.Now
	vo.Logger = logger.WithPrefix("virtual")

	co := opts.Click
	co.Scale, co.Now = opts.Scale, opts.Now
	co.Logger = logger.WithPrefix("click")

	e := &Engine{
		Virtualizer: virtual.New(vo),
		log:         logger,
	}
	for _, l := range lists {
		e.Virtualizer.AddList(l)
		if l.Container == nil {
			continue
		}
		e.Wheels = append(e.Wheels, wheel.Install(l.Container, wheel.Options{
			Scale:  opts.Scale,
			Now:    opts.Now,
			Logger: logger.WithPrefix("wheel").With("list", l.ID),
		}))
	}
	e.Corrector = click.Install(doc, co)
	e.Virtualizer.Attach(store)
	logger.Debug("engine installed", "lists", len(lists), "wheels", len(e.Wheels))
	return e
}

// Detach removes every listener and subscription. Safe to call more than
// once.
func (e *Engine) Detach() {
	if e == nil || e.detached {
		return
	}
	e.detached = true
	e.Virtualizer.Detach()
	for _, w := range e.Wheels {
		w.Detach()
	}
	e.Corrector.Detach()
	e.log.Debug("engine detached")
}

// Detached reports whether Detach has run.
func (e *Engine) Detached() bool { return e.detached }
