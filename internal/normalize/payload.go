package normalize

import "github.com/maheshrc27/contentflow/internal/models"

// Payload is the body a client sends when saving an entry's platform content.
// Older clients send platformContent, newer ones platforms; some send both.
type Payload struct {
	PlatformContent map[models.Platform]LegacyContent `json:"platformContent"`
	Platforms       []PlatformRow                     `json:"platforms"`
}

func (p Payload) Empty() bool {
	return len(p.PlatformContent) == 0 && len(p.Platforms) == 0
}

// Source resolves the payload into shapes once; nothing past this point sees
// the raw payload.
func (p Payload) Source(entry models.ContentEntry) Source {
	src := Source{Entry: entry}
	if len(p.PlatformContent) > 0 {
		src.Shapes = append(src.Shapes, LegacyShape(p.PlatformContent))
	}
	if len(p.Platforms) > 0 {
		src.Shapes = append(src.Shapes, CurrentShape(p.Platforms))
	}
	return src
}
