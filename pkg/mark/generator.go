package mark

// Generator turns LogoSpecs into Scenes. It holds only immutable
// configuration and is safe for concurrent use.
type Generator struct {
	fonts FontTable
}

// Option configures a [Generator].
type Option func(*Generator)

// WithFonts replaces the default font table. Styles missing from t keep
// their default chain.
func WithFonts(t FontTable) Option {
	return func(g *Generator) { g.fonts = DefaultFonts().Merge(t) }
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{fonts: DefaultFonts()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fonts returns the generator's font table.
func (g *Generator) Fonts() FontTable { return g.fonts }

// Generate produces the scene for spec. It fails only on an unsupported
// style or aspect.
func (g *Generator) Generate(spec LogoSpec) (Scene, error) {
	return g.generate(spec, NewStream(spec.SeedComposite()))
}

// GenerateTrace is Generate plus a record of every draw consumed.
func (g *Generator) GenerateTrace(spec LogoSpec) (Scene, *Trace, error) {
	composite := spec.SeedComposite()
	hash := Hash(composite)
	s := newStreamState(hash)

	t := &Trace{
		Composite:    composite,
		Hash:         hash,
		InitialState: s.state,
	}
	s.rec = &t.Draws

	scene, err := g.generate(spec, s)
	if err != nil {
		return Scene{}, nil, err
	}
	t.Decision = scene.Decision
	t.Elements = len(scene.Elements)
	return scene, t, nil
}

func (g *Generator) generate(spec LogoSpec, s *Stream) (Scene, error) {
	if err := spec.Validate(); err != nil {
		return Scene{}, err
	}

	d := Plan(s, spec.Style)
	elems, err := Build(s, spec.Style, d)
	if err != nil {
		return Scene{}, err
	}

	scene, err := Compose(spec, elems, g.fonts)
	if err != nil {
		return Scene{}, err
	}
	scene.Decision = d
	return scene, nil
}

// Generate produces the scene for spec with the default font table.
func Generate(spec LogoSpec) (Scene, error) {
	return New().Generate(spec)
}
