package catalog

import "testing"

func TestAirDate(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		want      string
	}{
		{"afternoon stays on its day", "2026-03-10T18:00:00Z", "2026-03-10"},
		{"early morning rolls back a day", "2026-03-10T02:30:00Z", "2026-03-09"},
		{"exactly noon rolls back to midnight", "2026-03-10T12:00:00Z", "2026-03-10"},
		{"unparsable passes through", "not-a-time", "not-a-time"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AirDate(tt.startTime); got != tt.want {
				t.Errorf("AirDate(%q) = %q, want %q", tt.startTime, got, tt.want)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		suffix string
		want   string
	}{
		{"trims matching suffix", "Episode 12 - Live Stream", " - Live Stream", "Episode 12"},
		{"leaves non-matching title", "Episode 12", " - Live Stream", "Episode 12"},
		{"empty suffix is a no-op", "Episode 12 - Live Stream", "", "Episode 12 - Live Stream"},
		{"suffix in the middle is kept", "A - Live Stream - B", " - Live Stream", "A - Live Stream - B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title, tt.suffix); got != tt.want {
				t.Errorf("CleanTitle(%q, %q) = %q, want %q", tt.title, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestSortEpisodes(t *testing.T) {
	episodes := []Episode{
		{VideoID: "b", StartTime: "2026-02-01T00:00:00Z"},
		{VideoID: "c", StartTime: "2026-03-01T00:00:00Z"},
		{VideoID: "a", StartTime: "2026-01-01T00:00:00Z"},
	}

	SortEpisodes(episodes)

	want := []string{"c", "b", "a"}
	for i, id := range want {
		if episodes[i].VideoID != id {
			t.Errorf("episodes[%d] = %s, want %s", i, episodes[i].VideoID, id)
		}
	}
}

func TestNeighbors(t *testing.T) {
	episodes := []Episode{
		{VideoID: "newest"},
		{VideoID: "middle"},
		{VideoID: "oldest"},
	}

	item, next, prev := Neighbors(episodes, "middle")
	if item == nil || item.VideoID != "middle" {
		t.Fatalf("item = %+v", item)
	}
	if next == nil || next.VideoID != "newest" {
		t.Errorf("next = %+v, want newest", next)
	}
	if prev == nil || prev.VideoID != "oldest" {
		t.Errorf("prev = %+v, want oldest", prev)
	}
}

func TestNeighbors_Edges(t *testing.T) {
	episodes := []Episode{
		{VideoID: "newest"},
		{VideoID: "oldest"},
	}

	item, next, prev := Neighbors(episodes, "newest")
	if item == nil || next != nil || prev == nil || prev.VideoID != "oldest" {
		t.Errorf("newest: item=%v next=%v prev=%v", item, next, prev)
	}

	item, next, prev = Neighbors(episodes, "oldest")
	if item == nil || prev != nil || next == nil || next.VideoID != "newest" {
		t.Errorf("oldest: item=%v next=%v prev=%v", item, next, prev)
	}
}

func TestNeighbors_NotFound(t *testing.T) {
	episodes := []Episode{{VideoID: "only"}}

	item, next, prev := Neighbors(episodes, "missing")
	if item != nil || next != nil || prev != nil {
		t.Errorf("expected all nil, got item=%v next=%v prev=%v", item, next, prev)
	}
}
