package constant

// Actor identities double as scheduling priorities (lower is scanned first)
const (
	ActorInputMonitor     = 1
	ActorKeyDispatcher    = 2
	ActorScreenCompositor = 3
	ActorRenderEngine     = 4
	ActorEngine           = 5
)

// Actor names used for registration, logging and metric keys
const (
	NameInputMonitor     = "input_monitor"
	NameKeyDispatcher    = "key_dispatcher"
	NameScreenCompositor = "screen_compositor"
	NameRenderEngine     = "render_engine"
	NameEngine           = "engine"
)
