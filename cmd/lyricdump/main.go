// lyricdump is a debugging CLI: it searches the lyric API for a keyword,
// takes the first hit, downloads and parses its lyrics and writes the line
// sequence to a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lyricduet/duetbot/internal/config"
	"github.com/lyricduet/duetbot/internal/lyrics"
	"github.com/lyricduet/duetbot/internal/netease"
	"github.com/lyricduet/duetbot/internal/utils"
)

func main() {
	var outputFile string

	flag.StringVar(&outputFile, "output", "lyrics.txt", "Output file name")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <keyword>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Example: %s -output qingtian.txt 晴天\n", os.Args[0])
		os.Exit(1)
	}

	keyword := strings.Join(args, " ")
	baseURL := utils.OptionalEnv("LOOKUP_BASE_URL", config.DefaultLookupBaseURL)
	api := netease.NewClient(baseURL)
	ctx := context.Background()

	songs := api.Search(ctx, keyword, 1)
	if len(songs) == 0 {
		log.Fatalf("no songs found for %q", keyword)
	}
	song := songs[0]
	fmt.Printf("found: %s - %s (id %s)\n", song.Name, song.Artist, song.ID)

	raw := api.FetchLyrics(ctx, song.ID)
	if raw == nil {
		log.Fatalf("no lyrics for song %s", song.ID)
	}

	lines := lyrics.ParseWordTimed(raw.WordTimed)
	source := "word-timed"
	if len(lines) == 0 {
		lines = lyrics.ParseLineTimed(raw.LineTimed)
		source = "line-timed"
	}
	lines = lyrics.FilterMetadata(lines, config.SplitKeywords(""))
	if len(lines) == 0 {
		log.Fatalf("lyrics for song %s parsed to nothing", song.ID)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(fmt.Sprintf("[%8d] %s\n", line.Time, line.Text))
	}
	if err := os.WriteFile(outputFile, []byte(b.String()), 0644); err != nil {
		log.Fatalf("error saving file: %v", err)
	}

	fmt.Printf("%d lines (%s format) saved to %s\n", len(lines), source, outputFile)
}
