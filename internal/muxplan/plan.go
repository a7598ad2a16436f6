package muxplan

import (
	"strconv"

	"dubmux/internal/media"
)

const (
	DefaultPrimaryLanguage = "jpn"
	DefaultTrackLanguage   = "rus"

	// First output index handed to added tracks of each class. Audio index 0
	// is the video's own track.
	audioIndexBase    = 1
	subtitleIndexBase = 0
)

// StreamType is the ffmpeg stream specifier letter.
type StreamType string

const (
	StreamVideo    StreamType = "v"
	StreamAudio    StreamType = "a"
	StreamSubtitle StreamType = "s"
)

// Input is one `-i` declaration.
type Input struct {
	Index int
	Path  string
	Class media.Class
	Group string
}

// StreamMap selects every stream of one type from an input (`-map 1:a`).
type StreamMap struct {
	Input int
	Type  StreamType
}

func (m StreamMap) String() string {
	return strconv.Itoa(m.Input) + ":" + string(m.Type)
}

// Tag is one `-metadata:s:<type>:<index> key=value` directive.
type Tag struct {
	Type  StreamType
	Index int
	Key   string
	Value string
}

// Flag returns the option half of the directive.
func (t Tag) Flag() string {
	return "-metadata:s:" + string(t.Type) + ":" + strconv.Itoa(t.Index)
}

// Assignment returns the key=value half of the directive.
func (t Tag) Assignment() string {
	return t.Key + "=" + t.Value
}

// Request carries everything needed to plan one output file.
type Request struct {
	Video     string
	Audio     []media.Asset
	Subtitles []media.Asset
	Output    string
	// PrimaryLanguage tags the video's own video and audio streams.
	PrimaryLanguage string
	// TrackLanguage tags every added audio and subtitle track.
	TrackLanguage string
}

// Plan fully describes one mux invocation.
type Plan struct {
	Inputs []Input
	Maps   []StreamMap
	Tags   []Tag
	Output string
}

// Build assembles the plan for req. Input 0 is always the video; its video and
// audio streams are mapped unconditionally. Added audio tracks take output
// indices from 1 upwards, subtitles from 0 upwards, each in request order.
func Build(req Request) Plan {
	primary := req.PrimaryLanguage
	if primary == "" {
		primary = DefaultPrimaryLanguage
	}
	track := req.TrackLanguage
	if track == "" {
		track = DefaultTrackLanguage
	}

	plan := Plan{
		Inputs: make([]Input, 0, 1+len(req.Audio)+len(req.Subtitles)),
		Maps:   []StreamMap{{Input: 0, Type: StreamVideo}, {Input: 0, Type: StreamAudio}},
		Tags: []Tag{
			{Type: StreamVideo, Index: 0, Key: "language", Value: primary},
			{Type: StreamAudio, Index: 0, Key: "language", Value: primary},
		},
		Output: req.Output,
	}
	plan.Inputs = append(plan.Inputs, Input{Index: 0, Path: req.Video, Class: media.Video})

	plan.addTracks(req.Audio, StreamAudio, audioIndexBase, track)
	plan.addTracks(req.Subtitles, StreamSubtitle, subtitleIndexBase, track)
	return plan
}

func (p *Plan) addTracks(assets []media.Asset, stream StreamType, base int, language string) {
	for i, asset := range assets {
		input := len(p.Inputs)
		out := base + i
		p.Inputs = append(p.Inputs, Input{Index: input, Path: asset.Path, Class: asset.Class, Group: asset.Group})
		p.Maps = append(p.Maps, StreamMap{Input: input, Type: stream})
		p.Tags = append(p.Tags,
			Tag{Type: stream, Index: out, Key: "language", Value: language},
			Tag{Type: stream, Index: out, Key: "title", Value: asset.Group},
		)
	}
}

// Args renders the ffmpeg argument list, excluding the binary name:
// overwrite flag, inputs, maps, passthrough codecs, metadata, output.
func (p Plan) Args() []string {
	args := make([]string, 0, 2+2*len(p.Inputs)+2*len(p.Maps)+6+2*len(p.Tags)+1)
	args = append(args, "-y")
	for _, in := range p.Inputs {
		args = append(args, "-i", in.Path)
	}
	for _, m := range p.Maps {
		args = append(args, "-map", m.String())
	}
	args = append(args, "-c:v", "copy", "-c:a", "copy", "-c:s", "copy")
	for _, tag := range p.Tags {
		args = append(args, tag.Flag(), tag.Assignment())
	}
	return append(args, p.Output)
}
