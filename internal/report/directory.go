package report

import (
	"context"

	"go.uber.org/zap"

	"tellerdesk/internal/api"
)

// ClientLister is the slice of the ledger API the directory consumes.
type ClientLister interface {
	ListClients(ctx context.Context) ([]api.Client, error)
}

// Directory is the load-once, read-many client list backing the selection
// picker. It is populated at most once per activation; lookups never
// re-fetch. Fetch is safe from a command goroutine; Commit belongs to the
// update loop.
type Directory struct {
	lister ClientLister
	logger *zap.Logger

	loaded  bool
	clients []api.Client
	loadErr string
}

// NewDirectory builds an empty, unloaded directory.
func NewDirectory(l ClientLister, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{lister: l, logger: logger.Named("directory")}
}

// DirectoryResult is the settled outcome of the one-time client load.
type DirectoryResult struct {
	Clients []api.Client
	Err     error
}

// NeedsLoad reports whether the one-time load has not happened yet.
func (d *Directory) NeedsLoad() bool { return !d.loaded }

// Fetch performs the client-list fetch.
func (d *Directory) Fetch(ctx context.Context) DirectoryResult {
	clients, err := d.lister.ListClients(ctx)
	return DirectoryResult{Clients: clients, Err: err}
}

// Commit stores the loaded list. A transport failure is absorbed: the
// directory holds an empty list plus a recorded message, and the picker
// keeps working with zero entries.
func (d *Directory) Commit(r DirectoryResult) {
	d.loaded = true
	if r.Err != nil {
		d.logger.Warn("client directory load failed", zap.Error(r.Err))
		d.clients = []api.Client{}
		d.loadErr = r.Err.Error()
		return
	}
	d.clients = r.Clients
	if d.clients == nil {
		d.clients = []api.Client{}
	}
	d.loadErr = ""
}

// Clients returns the cached list, empty until loaded.
func (d *Directory) Clients() []api.Client { return d.clients }

// Err returns the recorded load failure message, if any.
func (d *Directory) Err() string { return d.loadErr }

// Find looks a client up by id in the cached list. Absent when not found
// or not yet loaded.
func (d *Directory) Find(id int64) (api.Client, bool) {
	for _, c := range d.clients {
		if c.ID == id {
			return c, true
		}
	}
	return api.Client{}, false
}
