package text

import (
	"errors"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/cache"
)

// Bundled logical font names, always available.
const (
	Regular = "regular"
	Bold    = "bold"
)

// Resolver maps a logical font name and pixel size to a face.
type Resolver interface {
	Face(name string, size float64) (Face, error)
}

// FileReader reads font files; *asset.Store implements it.
type FileReader interface {
	ReadFile(dir, name string) ([]byte, error)
}

// fontExts are tried in order when loading a font by logical name.
var fontExts = []string{".ttf", ".otf"}

type faceKey struct {
	name string
	size float64
}

func hashFaceKey(k faceKey) uint64 {
	return cache.StringHasher(k.name) ^ math.Float64bits(k.size)
}

// Library is the default Resolver. Fonts are registered explicitly or
// loaded lazily as <dir>/<name>.ttf or <dir>/<name>.otf from a FileReader.
// The Go fonts are pre-registered as Regular and Bold.
//
// Library is safe for concurrent use.
type Library struct {
	files   FileReader
	dir     string
	srcOpts []SourceOption

	mu      sync.RWMutex
	sources map[string]*FontSource

	faces *cache.Cache[faceKey, Face]
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithFontFiles sets where unregistered fonts are loaded from.
func WithFontFiles(files FileReader, dir string) LibraryOption {
	return func(l *Library) {
		l.files = files
		l.dir = dir
	}
}

// WithSourceOptions applies options to every source the library parses.
func WithSourceOptions(opts ...SourceOption) LibraryOption {
	return func(l *Library) {
		l.srcOpts = append(l.srcOpts, opts...)
	}
}

// NewLibrary creates a library with the bundled Go fonts registered.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		sources: make(map[string]*FontSource),
		faces:   cache.New[faceKey, Face](cache.DefaultCapacity, hashFaceKey),
	}
	for _, opt := range opts {
		opt(l)
	}
	// The bundled fonts are known-good; parse errors are impossible here.
	_ = l.Register(Regular, goregular.TTF)
	_ = l.Register(Bold, gobold.TTF)
	return l
}

// Register parses data and makes it available under name, replacing any
// previous font with that name.
func (l *Library) Register(name string, data []byte) error {
	src, err := NewFontSource(data, l.srcOpts...)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.sources[name] = src
	l.mu.Unlock()
	l.faces.Clear()
	return nil
}

// Source returns the font source for a logical name, loading it on first
// use. A missing font file is reported as asset.ErrNotFound.
func (l *Library) Source(name string) (*FontSource, error) {
	l.mu.RLock()
	src, ok := l.sources[name]
	l.mu.RUnlock()
	if ok {
		return src, nil
	}
	if l.files == nil {
		return nil, &asset.NotFoundError{Dir: l.dir, Path: name}
	}

	data, err := l.readFont(name)
	if err != nil {
		return nil, err
	}
	src, err = NewFontSource(data, l.srcOpts...)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.sources[name]; ok {
		return existing, nil
	}
	l.sources[name] = src
	return src, nil
}

func (l *Library) readFont(name string) ([]byte, error) {
	candidates := []string{name}
	if !hasFontExt(name) {
		candidates = candidates[:0]
		for _, ext := range fontExts {
			candidates = append(candidates, name+ext)
		}
	}
	var lastErr error
	for _, c := range candidates {
		data, err := l.files.ReadFile(l.dir, c)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, asset.ErrNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func hasFontExt(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range fontExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Face implements Resolver. Faces are cached per (name, size).
func (l *Library) Face(name string, size float64) (Face, error) {
	if name == "" {
		name = Regular
	}
	face, err := l.faces.GetOrLoad(faceKey{name, size}, func() (Face, error) {
		src, err := l.Source(name)
		if err != nil {
			return nil, err
		}
		return src.Face(size)
	})
	if err != nil {
		return nil, &FontError{Name: name, Size: size, Err: err}
	}
	return face, nil
}
