package usecase

import (
	"locator-inspector/internal/usecase/adapters"
)

type serviceFactory struct {
	deps Params
}

func newServiceFactory(deps Params) *serviceFactory {
	return &serviceFactory{
		deps: deps,
	}
}

func (f *serviceFactory) CreateInspectorService() adapters.InspectorService {
	return NewInspectorService(InspectorServiceParams{
		Config:  f.deps.Config,
		Logger:  f.deps.Logger,
		Engine:  f.deps.Engine,
		Browser: f.deps.Browser,
	})
}

func (f *serviceFactory) CreateBrowserService() adapters.BrowserService {
	return f.deps.Browser
}
