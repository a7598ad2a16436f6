package muxplan

import (
	"reflect"
	"testing"

	"dubmux/internal/media"
)

func audio(path, group string) media.Asset {
	return media.Asset{Path: path, Class: media.Audio, Key: "5", Group: group}
}

func subtitle(path, group string) media.Asset {
	return media.Asset{Path: path, Class: media.Subtitle, Key: "5", Group: group}
}

func TestBuildArgsOneTrackPerClass(t *testing.T) {
	plan := Build(Request{
		Video:     "src/Show - 05.mkv",
		Audio:     []media.Asset{audio("src/Rus Sound/TeamX/05.mka", "TeamX")},
		Subtitles: []media.Asset{subtitle("src/Rus Subs/SubTeam/05.ass", "SubTeam")},
		Output:    "dst/Show - 05.mkv",
	})

	want := []string{
		"-y",
		"-i", "src/Show - 05.mkv",
		"-i", "src/Rus Sound/TeamX/05.mka",
		"-i", "src/Rus Subs/SubTeam/05.ass",
		"-map", "0:v", "-map", "0:a", "-map", "1:a", "-map", "2:s",
		"-c:v", "copy", "-c:a", "copy", "-c:s", "copy",
		"-metadata:s:v:0", "language=jpn",
		"-metadata:s:a:0", "language=jpn",
		"-metadata:s:a:1", "language=rus",
		"-metadata:s:a:1", "title=TeamX",
		"-metadata:s:s:0", "language=rus",
		"-metadata:s:s:0", "title=SubTeam",
		"dst/Show - 05.mkv",
	}
	if got := plan.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildIndicesFollowRequestOrder(t *testing.T) {
	plan := Build(Request{
		Video: "v.mkv",
		Audio: []media.Asset{
			audio("a1.mka", "A"),
			audio("a2.mka", "B"),
			audio("a3.mka", "надписи"),
		},
		Subtitles: []media.Asset{
			subtitle("s1.ass", "S1"),
			subtitle("s2.ass", "S2"),
		},
		Output: "out.mkv",
	})

	for i, in := range plan.Inputs {
		if in.Index != i {
			t.Fatalf("input %d has index %d", i, in.Index)
		}
	}
	if plan.Inputs[0].Path != "v.mkv" || plan.Inputs[0].Class != media.Video {
		t.Fatalf("input 0 must be the video, got %+v", plan.Inputs[0])
	}

	wantMaps := []string{"0:v", "0:a", "1:a", "2:a", "3:a", "4:s", "5:s"}
	var maps []string
	for _, m := range plan.Maps {
		maps = append(maps, m.String())
	}
	if !reflect.DeepEqual(maps, wantMaps) {
		t.Fatalf("maps = %v, want %v", maps, wantMaps)
	}

	titles := map[string]string{}
	for _, tag := range plan.Tags {
		if tag.Key == "title" {
			titles[tag.Flag()] = tag.Value
		}
	}
	wantTitles := map[string]string{
		"-metadata:s:a:1": "A",
		"-metadata:s:a:2": "B",
		"-metadata:s:a:3": "надписи",
		"-metadata:s:s:0": "S1",
		"-metadata:s:s:1": "S2",
	}
	if !reflect.DeepEqual(titles, wantTitles) {
		t.Fatalf("titles = %v, want %v", titles, wantTitles)
	}
}

func TestBuildSubtitlesOnly(t *testing.T) {
	plan := Build(Request{
		Video:     "v.mkv",
		Subtitles: []media.Asset{subtitle("s.ass", "Subs")},
		Output:    "out.mkv",
	})
	if len(plan.Inputs) != 2 || plan.Inputs[1].Path != "s.ass" {
		t.Fatalf("unexpected inputs %+v", plan.Inputs)
	}
	if plan.Maps[2].String() != "1:s" {
		t.Fatalf("subtitle input should be 1:s, got %s", plan.Maps[2])
	}
	for _, tag := range plan.Tags {
		if tag.Type == StreamAudio && tag.Index > 0 {
			t.Fatalf("unexpected added audio tag %+v", tag)
		}
	}
}

func TestBuildLanguageOverrides(t *testing.T) {
	plan := Build(Request{
		Video:           "v.mkv",
		Audio:           []media.Asset{audio("a.mka", "A")},
		Output:          "out.mkv",
		PrimaryLanguage: "kor",
		TrackLanguage:   "ukr",
	})
	want := []Tag{
		{Type: StreamVideo, Index: 0, Key: "language", Value: "kor"},
		{Type: StreamAudio, Index: 0, Key: "language", Value: "kor"},
		{Type: StreamAudio, Index: 1, Key: "language", Value: "ukr"},
		{Type: StreamAudio, Index: 1, Key: "title", Value: "A"},
	}
	if !reflect.DeepEqual(plan.Tags, want) {
		t.Fatalf("tags = %+v, want %+v", plan.Tags, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	req := Request{
		Video:     "v.mkv",
		Audio:     []media.Asset{audio("a.mka", "A"), audio("b.mka", "B")},
		Subtitles: []media.Asset{subtitle("s.ass", "S")},
		Output:    "out.mkv",
	}
	first := Build(req).Args()
	second := Build(req).Args()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Build is not deterministic:\n%q\n%q", first, second)
	}
}
