package backend

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Session is one loaded document. Reloads of the same document keep the ID
// and bump the Revision.
type Session struct {
	ID       string
	Revision int
	// Path is empty for documents read from a stream.
	Path   string
	Charts *Charts
	Err    error
}

// Datasource loads chart documents, watches their files and streams every
// resulting Session to subscribers.
type Datasource struct {
	fs      afero.Fs
	logger  *log.Logger
	watcher *fsnotify.Watcher
	appCtx  context.Context

	lock    sync.Mutex
	latest  Session
	watched map[string]bool
	dirs    map[string]bool
	subs    map[int]chan Session
	nextSub int
}

func NewDatasource(appCtx context.Context, fsys afero.Fs, logger *log.Logger) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		fs:      fsys,
		logger:  logger,
		watcher: watcher,
		appCtx:  appCtx,
		watched: map[string]bool{},
		dirs:    map[string]bool{},
		subs:    map[int]chan Session{},
	}
	go d.watch()
	return d, nil
}

// Close stops watching files.
func (d *Datasource) Close() error {
	return d.watcher.Close()
}

// Sessions streams the latest session followed by every new one until ctx
// is done. Slow readers only ever see the most recent session.
func (d *Datasource) Sessions(ctx context.Context) <-chan Session {
	out := make(chan Session, 1)
	d.lock.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = out
	if d.latest.ID != "" {
		out <- d.latest
	}
	d.lock.Unlock()
	go func() {
		<-ctx.Done()
		d.lock.Lock()
		defer d.lock.Unlock()
		delete(d.subs, id)
		close(out)
	}()
	return out
}

// Latest returns the most recent session.
func (d *Datasource) Latest() Session {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.latest
}

func (d *Datasource) publish(s Session) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.latest = s
	for _, ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// LoadFile starts loading the document at path and returns the session ID
// its results will carry.
func (d *Datasource) LoadFile(path string) string {
	id := generateSessionID()
	go d.load(id, 0, path)
	return id
}

// LoadChosen loads a document picked by the user. Files that know their
// name are loaded by path so that they can be watched.
func (d *Datasource) LoadChosen(file io.ReadCloser) string {
	if f, ok := file.(interface{ Name() string }); ok {
		file.Close()
		return d.LoadFile(f.Name())
	}
	return d.LoadFromStream(file)
}

// LoadFromStream loads a document of either encoding from r. Its data files
// are resolved against the working directory and it is not watched.
func (d *Datasource) LoadFromStream(r io.ReadCloser) string {
	id := generateSessionID()
	go func() {
		defer r.Close()
		session := Session{ID: id}
		doc, err := Sniff(r)
		if err == nil {
			session.Charts, err = LoadDocument(d.appCtx, d.fs, doc, "")
		}
		session.Err = err
		if err != nil {
			d.logger.Error("failed loading document", "session", id, "err", err)
		}
		d.publish(session)
	}()
	return id
}

// Reload loads the current document again.
func (d *Datasource) Reload() {
	latest := d.Latest()
	if latest.Path == "" {
		return
	}
	d.load(latest.ID, latest.Revision+1, latest.Path)
}

func (d *Datasource) load(id string, revision int, path string) {
	session := Session{ID: id, Revision: revision, Path: path}
	charts, err := Load(d.appCtx, d.fs, path)
	session.Charts, session.Err = charts, err
	if err != nil {
		d.logger.Error("failed loading document", "path", path, "err", err)
		d.publish(session)
		return
	}
	d.logger.Debug("loaded document", "path", path, "revision", revision, "files", len(charts.Files))
	d.follow(charts.Files)
	d.publish(session)
}

// follow watches the directories holding files, so that editors replacing
// a file are noticed too.
func (d *Datasource) follow(files []string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	clear(d.watched)
	for _, f := range files {
		f = filepath.Clean(f)
		d.watched[f] = true
		dir := filepath.Dir(f)
		if d.dirs[dir] {
			continue
		}
		if err := d.watcher.Add(dir); err != nil {
			d.logger.Debug("not watching", "dir", dir, "err", err)
			continue
		}
		d.dirs[dir] = true
	}
}

func (d *Datasource) isWatched(name string) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.watched[filepath.Clean(name)]
}

func (d *Datasource) watch() {
	for {
		select {
		case <-d.appCtx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if d.isWatched(ev.Name) {
				d.logger.Debug("file changed", "name", ev.Name, "op", ev.Op)
				d.Reload()
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("file watcher failed", "err", err)
		}
	}
}
