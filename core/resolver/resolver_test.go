package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SongSense/core/source"
	"SongSense/model"
)

// fakeSource returns a fixed partial result and records whether it was
// consulted and with what query.
type fakeSource struct {
	name   string
	result *model.PartialSongInfo
	called bool
	query  source.SourceQuery
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Attempt(ctx context.Context, q source.SourceQuery) *model.PartialSongInfo {
	f.called = true
	f.query = q
	if f.result == nil {
		return nil
	}
	out := *f.result
	return &out
}

func TestResolveEmptyQuery(t *testing.T) {
	r := New(nil, nil, nil)

	song, err := r.Resolve(context.Background(), "   ")
	assert.Nil(t, song)
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestResolveFirstLyricsHitWins(t *testing.T) {
	first := &fakeSource{name: "first", result: &model.PartialSongInfo{
		Title:  "Chandelier",
		Artist: "Sia",
		Lyrics: "Party girls don't get hurt...",
	}}
	second := &fakeSource{name: "second", result: &model.PartialSongInfo{
		Title:  "Wrong Song",
		Artist: "Wrong Artist",
		Lyrics: "wrong lyrics",
	}}

	r := New([]source.Source{first, second}, nil, nil)

	song, err := r.Resolve(context.Background(), "Sia - Chandelier")
	require.NoError(t, err)
	assert.True(t, first.called)
	assert.False(t, second.called, "later lyrics sources must not run after a hit")
	assert.Equal(t, "Chandelier", song.Title)
	assert.Equal(t, "Sia", song.Artist)
	assert.Equal(t, "Party girls don't get hurt...", song.Lyrics)
}

func TestResolveMergePriority(t *testing.T) {
	lyrics := &fakeSource{name: "lyrics", result: &model.PartialSongInfo{
		Title:  "Chandelier",
		Artist: "Sia",
		Genre:  "Pop",
		Lyrics: "Party girls don't get hurt...",
	}}
	enrichment := &fakeSource{name: "enrichment", result: &model.PartialSongInfo{
		Genre: "Electropop",
		Year:  2014,
	}}
	canonical := &fakeSource{name: "canonical", result: &model.PartialSongInfo{
		Title:  "Chandelier (canonical)",
		Artist: "Sia (canonical)",
		Year:   2013,
	}}

	r := New([]source.Source{lyrics}, enrichment, canonical)

	song, err := r.Resolve(context.Background(), "Sia - Chandelier")
	require.NoError(t, err)

	// Earlier sources keep their fields; later ones only fill gaps.
	assert.Equal(t, "Chandelier", song.Title)
	assert.Equal(t, "Sia", song.Artist)
	assert.Equal(t, "Pop", song.Genre)
	assert.Equal(t, 2014, song.Year)
	assert.Equal(t, "Party girls don't get hurt...", song.Lyrics)

	assert.True(t, enrichment.called)
	assert.True(t, canonical.called)
	assert.Equal(t, "Chandelier", canonical.query.Title)
	assert.Equal(t, "Sia", canonical.query.Artist)
}

func TestResolveNoLyricsFallsBackToParsedQuery(t *testing.T) {
	miss := &fakeSource{name: "miss"}
	enrichment := &fakeSource{name: "enrichment", result: &model.PartialSongInfo{Genre: "Pop"}}
	canonical := &fakeSource{name: "canonical", result: &model.PartialSongInfo{
		Genre: "Rock",
		Year:  1976,
	}}

	r := New([]source.Source{miss}, enrichment, canonical)

	song, err := r.Resolve(context.Background(), "Hotel California by Eagles")
	require.NoError(t, err)

	assert.Equal(t, "Hotel California", song.Title)
	assert.Equal(t, "Eagles", song.Artist)
	assert.Equal(t, "Rock", song.Genre)
	assert.Equal(t, 1976, song.Year)
	assert.Empty(t, song.Lyrics)
	assert.False(t, song.HasLyrics())

	assert.False(t, enrichment.called, "enrichment only runs against a lyrics hit")
	assert.True(t, canonical.called, "canonical lookup always runs")
}

func TestResolveUnknownArtistPlaceholder(t *testing.T) {
	miss := &fakeSource{name: "miss"}

	r := New([]source.Source{miss}, nil, nil)

	song, err := r.Resolve(context.Background(), "Stay")
	require.NoError(t, err)
	assert.Equal(t, "Stay", song.Title)
	assert.Equal(t, UnknownArtist, song.Artist)
}

func TestResolveCanonicalFillsUnknownArtist(t *testing.T) {
	miss := &fakeSource{name: "miss"}
	canonical := &fakeSource{name: "canonical", result: &model.PartialSongInfo{
		Title:  "Stay",
		Artist: "Rihanna",
		Year:   2012,
	}}

	r := New([]source.Source{miss}, nil, canonical)

	song, err := r.Resolve(context.Background(), "Stay")
	require.NoError(t, err)
	// The parsed-query fallback sets the placeholder before the merge,
	// so canonical data does not displace it.
	assert.Equal(t, "Stay", song.Title)
	assert.Equal(t, UnknownArtist, song.Artist)
	assert.Equal(t, 2012, song.Year)
}

func TestResolveIsIdempotent(t *testing.T) {
	lyrics := &fakeSource{name: "lyrics", result: &model.PartialSongInfo{
		Title:  "Yesterday",
		Artist: "The Beatles",
		Lyrics: "Yesterday, all my troubles seemed so far away...",
	}}

	r := New([]source.Source{lyrics}, nil, nil)

	first, err := r.Resolve(context.Background(), "The Beatles - Yesterday")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "The Beatles - Yesterday")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMerge(t *testing.T) {
	base := &model.PartialSongInfo{Title: "A", Genre: "Rock"}
	next := &model.PartialSongInfo{Title: "B", Artist: "X", Genre: "Pop", Year: 2001}

	got := merge(base, next)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "X", got.Artist)
	assert.Equal(t, "Rock", got.Genre)
	assert.Equal(t, 2001, got.Year)

	assert.Nil(t, merge(nil, nil))
	assert.Equal(t, next, merge(nil, next))
	assert.Equal(t, base, merge(base, nil))
}
