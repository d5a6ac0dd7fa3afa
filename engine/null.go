package engine

// NullRenderer draws nothing. It keeps the last frame's drawables so headless
// hosts and tests can inspect what would have been drawn.
type NullRenderer struct {
	// StartErr is returned by Startup when set.
	StartErr error

	Started  bool
	Frames   int
	Last     []Drawable
	Textures map[string]string
}

func (r *NullRenderer) Startup() error {
	if r.StartErr != nil {
		return r.StartErr
	}
	r.Started = true
	return nil
}

func (r *NullRenderer) Shutdown() {
	r.Started = false
}

func (r *NullRenderer) Draw(drawables []Drawable) error {
	r.Frames++
	r.Last = append(r.Last[:0], drawables...)
	return nil
}

func (r *NullRenderer) LoadTexture(name, path string) error {
	if r.Textures == nil {
		r.Textures = make(map[string]string)
	}
	r.Textures[name] = path
	return nil
}

// NullInput is an InputSource whose keys are pressed and released by hand.
type NullInput struct {
	StartErr error

	Started bool
	Polls   int
	held    map[Key]bool
}

func (in *NullInput) Startup() error {
	if in.StartErr != nil {
		return in.StartErr
	}
	in.Started = true
	return nil
}

func (in *NullInput) Shutdown() {
	in.Started = false
}

func (in *NullInput) PollEvents() {
	in.Polls++
}

func (in *NullInput) KeyPressed(k Key) bool {
	return in.held[k]
}

// Press holds k down until Release.
func (in *NullInput) Press(k Key) {
	if in.held == nil {
		in.held = make(map[Key]bool)
	}
	in.held[k] = true
}

func (in *NullInput) Release(k Key) {
	delete(in.held, k)
}
