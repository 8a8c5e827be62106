// Package configs embeds the default runtime content files seeded by the
// installer. Operators edit the copies in the runtime directory, not these.
package configs

import "embed"

//go:embed texts.json files.json questions.json
var FS embed.FS
