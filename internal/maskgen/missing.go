package maskgen

type missing struct{}

func (missing) String() string { return "<missing>" }

// Missing stands for a pattern position that did not resolve for an
// instance: an absent key, or a container of the wrong type. It is distinct
// from nil (JSON null) and from every decoded JSON value.
var Missing any = missing{}

// IsMissing reports whether v is the Missing marker.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}
