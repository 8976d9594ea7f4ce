// Package loader reads the season manifest and the race files listed in it.
// Parsed race files are cached, scoring results are not.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/events"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
	"github.com/mpapenbr/skirace-standings-go/pkg/parse"
	"github.com/mpapenbr/skirace-standings-go/pkg/utils/cache"
	"github.com/mpapenbr/skirace-standings-go/pkg/utils/cache/loadercache"
)

var ErrNoRaces = errors.New("no race could be loaded")

type (
	Option func(l *Loader)
	Loader struct {
		manifestPath string
		expiration   time.Duration
		races        cache.Cache[string, model.Race]
		changes      chan<- Change
		l            *log.Logger
	}
	// Change is published by Watch when a watched file changed
	Change struct {
		File string `json:"file"`
		Op   string `json:"op"`
	}
)

func WithCacheExpiration(d time.Duration) Option {
	return func(l *Loader) {
		l.expiration = d
	}
}

// WithChanges makes Watch publish file changes to ch
func WithChanges(ch chan<- Change) Option {
	return func(l *Loader) {
		l.changes = ch
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.l = logger
	}
}

func New(manifestPath string, opts ...Option) *Loader {
	ret := &Loader{
		manifestPath: manifestPath,
		expiration:   5 * time.Minute,
		l:            log.Default().Named("loader"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.races = loadercache.New(
		loadercache.WithExpiration[string, model.Race](ret.expiration),
		loadercache.WithLogger[string, model.Race](ret.l.Named("cache")),
		loadercache.WithLoader(func(ctx context.Context, path string) (*model.Race, error) {
			return ReadRaceFile(path)
		}),
	)
	return ret
}

// ReadRaceFile parses a single race file
func ReadRaceFile(path string) (*model.Race, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	race, err := parse.ParseRace(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	race.Source = path
	return race, nil
}

// Load returns a fresh season snapshot. Race files which cannot be read are
// skipped, an error is returned only if no race could be loaded at all.
func (l *Loader) Load(ctx context.Context) (*model.Season, error) {
	m, err := ReadManifest(l.manifestPath)
	if err != nil {
		return nil, err
	}
	races := make([]*model.Race, 0, len(m.Races))
	for _, file := range m.Files(l.manifestPath) {
		race, err := l.races.Get(ctx, file)
		if err != nil {
			l.l.Warn("skipping race file", log.String("file", file), log.ErrorField(err))
			continue
		}
		races = append(races, race)
	}
	if len(races) == 0 {
		return nil, ErrNoRaces
	}
	season := &model.Season{Name: m.Name, Events: events.Group(races)}
	l.l.Debug("season loaded",
		log.String("name", season.Name),
		log.Int("races", len(races)),
		log.Int("events", len(season.Events)))
	return season, nil
}

// Watch invalidates cached race files when they change on disk.
// It blocks until ctx is done.
func (l *Loader) Watch(ctx context.Context) error {
	m, err := ReadManifest(l.manifestPath)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dirs := map[string]bool{filepath.Dir(l.manifestPath): true}
	for _, f := range m.Files(l.manifestPath) {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
		l.l.Debug("watching directory", log.String("dir", d))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				l.l.Debug("file changed", log.String("file", ev.Name))
				l.races.Invalidate(ctx, filepath.Clean(ev.Name))
				l.publish(ctx, Change{File: filepath.Clean(ev.Name), Op: ev.Op.String()})
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.l.Warn("watcher error", log.ErrorField(err))
		}
	}
}

func (l *Loader) publish(ctx context.Context, c Change) {
	if l.changes == nil {
		return
	}
	select {
	case l.changes <- c:
	case <-ctx.Done():
	}
}
