package fuzzer

import (
	"log/slog"

	"github.com/kju-lang/kju/internal/logger"
)

// programGenerator runs the assembly flow:
// initialize -> generateFunctions -> generateMain.
type programGenerator struct {
	opts  Options
	src   Source
	log   *slog.Logger
	g     *generator
	funcs []*Function
	main  Block
}

func newProgramGenerator(opts Options, src Source, log *slog.Logger) *programGenerator {
	return &programGenerator{opts: opts, src: src, log: log}
}

func (p *programGenerator) initialize() {
	p.g = newGenerator(p.opts, p.src, p.log)
}

func (p *programGenerator) generateFunctions() {
	p.funcs = make([]*Function, 0, p.opts.Functions)
	for i := 0; i < p.opts.Functions; i++ {
		p.funcs = append(p.funcs, p.g.function())
	}
}

// generateMain sees every function but none of their variables.
func (p *programGenerator) generateMain() {
	p.g.scope.ResetVariables()
	p.main = p.g.statements(p.opts.MainStatements)
}

func (p *programGenerator) build() *Program {
	p.initialize()
	p.generateFunctions()
	p.generateMain()
	return &Program{Functions: p.funcs, Main: p.main}
}

// Generate builds a random program from opts.Seed.
func Generate(opts Options) (*Program, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := logger.GetLogger()
	src := NewLCG(opts.Seed)
	if opts.TraceRNG {
		src.Trace(log)
	}
	log.Debug("generating program", "seed", opts.Seed, "functions", opts.Functions, "main_stmts", opts.MainStatements)
	return newProgramGenerator(opts, src, log).build(), nil
}

// GenerateFrom builds a random program from an arbitrary source. The same
// sequence of answers always yields the same program.
func GenerateFrom(src Source, opts Options) (*Program, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newProgramGenerator(opts, src, logger.GetLogger()).build(), nil
}
