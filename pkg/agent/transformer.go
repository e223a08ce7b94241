// Package agent adapts the patcher to a class-loading hook: it filters by
// class name, honours the disable switch, and hands failures to a
// replaceable escalation policy.
package agent

import (
	"os"

	"github.com/apex/log"

	"github.com/daimatz/classpatch/pkg/classfile"
	"github.com/daimatz/classpatch/pkg/patch"
)

// Escalator decides what happens after the target class could not be
// patched. className is the class that was offered to the hook.
type Escalator func(className string, err error)

// ShutdownEscalator exits with status 1 unless skip is set, in which case
// it only logs that the process is unprotected.
func ShutdownEscalator(skip bool, logger log.Interface, exit func(int)) Escalator {
	return func(className string, err error) {
		ctx := logger.WithField("class", className)
		if skip {
			ctx.Errorf("skipping shutdown because %s is set; the process is not protected", EnvSkipShutdown)
			return
		}
		ctx.Error("shutting down")
		exit(1)
	}
}

// Transformer is the hook body. It is safe for concurrent use.
type Transformer struct {
	cfg      Config
	patcher  *patch.Patcher
	logger   log.Interface
	escalate Escalator
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger. The default is the apex/log package logger.
func WithLogger(l log.Interface) Option {
	return func(t *Transformer) { t.logger = l }
}

// WithPatcher replaces the reference fetchJar patcher.
func WithPatcher(p *patch.Patcher) Option {
	return func(t *Transformer) { t.patcher = p }
}

// WithEscalator replaces the default ShutdownEscalator.
func WithEscalator(e Escalator) Option {
	return func(t *Transformer) { t.escalate = e }
}

// NewTransformer creates a Transformer for cfg.
func NewTransformer(cfg Config, opts ...Option) *Transformer {
	t := &Transformer{
		cfg:     cfg,
		patcher: patch.New(),
		logger:  log.Log,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.escalate == nil {
		t.escalate = ShutdownEscalator(cfg.SkipShutdown, t.logger, os.Exit)
	}
	return t
}

// Transform returns the patched class and true, or nil and false when the
// class is left as loaded.
func (t *Transformer) Transform(className string, buf []byte) ([]byte, bool) {
	ctx := t.logger.WithField("class", className)
	if className != t.cfg.ClassName {
		ctx.Debug("skipping transformation, class name does not match")
		return nil, false
	}
	if t.cfg.Disable {
		ctx.Infof("skipping transformation because %s is set", EnvDisable)
		return nil, false
	}

	ctx.Info("performing transformation")
	res, err := t.patcher.Apply(buf)
	if err == nil {
		ctx.WithFields(log.Fields{
			"target": t.patcher.Target,
			"offset": res.Offset,
		}).Debug("patched constant pool string")
		return res.Data, true
	}

	if classfile.IsFormatError(err) {
		ctx.WithError(err).Warn("failed to read class file")
	}
	ctx.WithError(err).Errorf("failed to find %q in the class file, cannot prevent exploitation", t.patcher.Target)
	t.escalate(className, err)
	return nil, false
}
