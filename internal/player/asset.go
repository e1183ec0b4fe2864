package player

import "sync"

var _ Media = (*Asset)(nil)

// Asset stands in for the media element on the server. It knows the file's
// URL and its probed duration, which is enough to render the initial player
// state before the browser loads any metadata.
type Asset struct {
	URL         string
	ContentType string

	mu       sync.Mutex
	duration float64
	position float64
	playing  bool
}

func NewAsset(url string, duration float64) *Asset {
	return &Asset{URL: url, ContentType: "video/mp4", duration: sanitize(duration)}
}

func (a *Asset) Play() error {
	a.mu.Lock()
	a.playing = true
	a.mu.Unlock()
	return nil
}

func (a *Asset) Pause() {
	a.mu.Lock()
	a.playing = false
	a.mu.Unlock()
}

func (a *Asset) CurrentTime() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

func (a *Asset) SetCurrentTime(t float64) {
	a.mu.Lock()
	a.position = t
	a.mu.Unlock()
}

func (a *Asset) Duration() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.duration
}

// View is the template data for one rendered player.
type View struct {
	Src         string
	ContentType string
	Title       string
	Duration    float64
	CurrentTime float64
	IsPlaying   bool
	Elapsed     string
	Total       string
}

// ViewFor renders a fresh, paused player over the asset.
func ViewFor(a *Asset, title string) View {
	p := New(a)
	p.HandleLoadedMetadata()
	p.HandleTimeUpdate()
	s := p.State()
	return View{
		Src:         a.URL,
		ContentType: a.ContentType,
		Title:       title,
		Duration:    s.Duration,
		CurrentTime: s.CurrentTime,
		IsPlaying:   s.IsPlaying,
		Elapsed:     FormatTime(s.CurrentTime),
		Total:       FormatTime(s.Duration),
	}
}
