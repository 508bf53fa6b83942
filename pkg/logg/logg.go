package logg

// Field keys shared by every layer's zap logger.
const (
	Layer      = "layer"
	Operation  = "op"
	SnapshotID = "snapshot_id"
	Selector   = "selector"
	Path       = "path"
	Category   = "category"
	Scope      = "scope"
	URL        = "url"
	Source     = "source"
)
