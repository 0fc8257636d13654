package archive

import "github.com/joshuapare/castkit/internal/format"

// linkKind is the closed set of (cast type, chunk tag) pairs the decoder
// knows about. Every other pair is linkUnhandled.
type linkKind uint8

const (
	linkUnhandled linkKind = iota
	linkBitmapPixels
	linkStyledText
	linkFilmLoop
	linkSoundHeader
	linkSoundSamples
	linkSound
	linkCuePoints
)

var linkKindNames = [...]string{
	"unhandled", "bitmap pixels", "styled text", "film loop",
	"sound header", "sound samples", "sound", "cue points",
}

func (k linkKind) String() string { return linkKindNames[k] }

type linkKey struct {
	typ format.CastType
	tag string
}

var linkKinds = map[linkKey]linkKind{
	{format.CastBitmap, format.TagBitmapData}:  linkBitmapPixels,
	{format.CastField, format.TagStyledText}:   linkStyledText,
	{format.CastFilmLoop, format.TagScoreView}: linkFilmLoop,
	{format.CastSound, format.TagSoundHeader}:  linkSoundHeader,
	{format.CastSound, format.TagSoundSamples}: linkSoundSamples,
	{format.CastSound, format.TagSound}:        linkSound,
	{format.CastSound, format.TagCuePoints}:    linkCuePoints,
}

func classifyLink(typ format.CastType, tag string) linkKind {
	return linkKinds[linkKey{typ, tag}]
}
