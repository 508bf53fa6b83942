package adapters

import (
	"context"
	"io"

	"locator-inspector/internal/entity"
)

type BrowserService interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	IsReady() bool
}

type InspectorService interface {
	LoadHTML(ctx context.Context, source string, r io.Reader) (*entity.Snapshot, error)
	Open(ctx context.Context, url string) (*entity.Snapshot, error)
	Inspect(ctx context.Context, req entity.InspectRequest) (*entity.Inspection, error)
	Scopes() ([]string, error)
	Current() (*entity.Snapshot, bool)
}
