package settings

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AuditLog is a Listener writing one info line per edited setting.
var AuditLog = ListenerFunc(func(_ context.Context, caller *Context, edited []Setting) {
	for _, setting := range edited {
		log.Info().
			Str("key", setting.Key).
			Str("type", string(setting.Type)).
			Uint64("actor", caller.Actor()).
			Bool("internal", caller.IsInternal()).
			Msg("setting edited")
	}
})
