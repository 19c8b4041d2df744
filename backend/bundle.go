package backend

import (
	"context"

	"git.sr.ht/~gioverse/skel/stream"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// WindowState is the backend as seen from one window.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

// NewWindowState binds the bundle to a window; invalidate must request a
// new frame of it.
func NewWindowState(ctx context.Context, bundle Bundle, invalidate func()) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, invalidate),
	}
}

// Bundle holds the application's long-lived backend services.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ctx context.Context, fsys afero.Fs, logger *log.Logger) (Bundle, error) {
	ds, err := NewDatasource(ctx, fsys, logger)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Datasource: ds}, nil
}
