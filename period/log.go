package period

import "github.com/rs/zerolog"

var log = zerolog.Nop()

// SetLogger routes the package's diagnostic warnings, such as missing fixings
// during rate resolution, to the given logger. The default logger discards.
func SetLogger(l zerolog.Logger) {
	log = l
}

func logWarnings(warns []Warning) {
	for _, w := range warns {
		log.Warn().Str("code", string(w.Code)).Msg(w.Message)
	}
}
