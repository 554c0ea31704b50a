package theme

type Theme interface {
	RenderNote(lane int) string
	RenderHitField(lane int) string
	RenderHit(lane int, perfect bool) string
	RenderMiss(lane int) string
	RenderOverlay(message string) string
	RenderLabel(message string) string
}
