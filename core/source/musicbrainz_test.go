package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMusicBrainzAttemptCanonicalMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recording", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Contains(t, r.URL.Query().Get("query"), "recording:")
		fmt.Fprint(w, `{"recordings":[{
			"id":"abc",
			"title":"Chandelier",
			"score":100,
			"artist-credit":[{"name":"Sia"}],
			"first-release-date":"2014-03-17",
			"tags":[{"name":"electropop"}]
		}]}`)
	}))
	defer srv.Close()

	src := NewMusicBrainzSource(srv.URL)
	info := src.Attempt(context.Background(), SourceQuery{Title: "chandelier", Artist: "sia"})

	require.NotNil(t, info)
	assert.Equal(t, "Chandelier", info.Title)
	assert.Equal(t, "Sia", info.Artist)
	assert.Equal(t, 2014, info.Year)
	assert.Equal(t, "electropop", info.Genre)
}

func TestMusicBrainzAttemptEchoesOnEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"recordings":[]}`)
	}))
	defer srv.Close()

	src := NewMusicBrainzSource(srv.URL)
	info := src.Attempt(context.Background(), SourceQuery{Title: "Chandelier", Artist: "Sia"})

	require.NotNil(t, info, "canonical source never returns absent")
	assert.Equal(t, "Chandelier", info.Title)
	assert.Equal(t, "Sia", info.Artist)
	assert.Zero(t, info.Year)
	assert.Empty(t, info.Genre)
}

func TestMusicBrainzAttemptEchoesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewMusicBrainzSource(srv.URL)
	info := src.Attempt(context.Background(), SourceQuery{Title: "Chandelier", Artist: "Sia"})

	require.NotNil(t, info)
	assert.Equal(t, "Chandelier", info.Title)
	assert.Equal(t, "Sia", info.Artist)
}

func TestMusicBrainzAttemptEchoesOnUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	src := NewMusicBrainzSource(srv.URL)
	info := src.Attempt(context.Background(), SourceQuery{Title: "Chandelier", Artist: "Sia"})

	require.NotNil(t, info)
	assert.Equal(t, "Chandelier", info.Title)
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, 2014, parseYear("2014-03-17"))
	assert.Equal(t, 2014, parseYear("09 Jul 2014, 15:21"))
	assert.Zero(t, parseYear(""))
	assert.Zero(t, parseYear("no year here"))
}
