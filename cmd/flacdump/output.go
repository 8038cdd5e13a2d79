package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"ktkr.us/pkg/flacparse/vorbis"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatYAML outputFormat = "yaml"
	formatJSON outputFormat = "json"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatText, formatYAML, formatJSON:
		return f, nil
	default:
		return "", errors.Errorf("unsupported output format: %q", s)
	}
}

type result struct {
	File        string            `json:"file" yaml:"file"`
	Vendor      string            `json:"vendor" yaml:"vendor"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Artist      string            `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album       string            `json:"album,omitempty" yaml:"album,omitempty"`
	TrackNumber string            `json:"tracknumber,omitempty" yaml:"tracknumber,omitempty"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func newResult(name string, c *vorbis.Comment, raw bool) result {
	res := result{File: name, Vendor: c.Vendor}
	res.Title, _ = c.Title()
	res.Artist, _ = c.Artist()
	res.Album, _ = c.Album()
	res.TrackNumber, _ = c.TrackNumber()
	if raw {
		res.Tags = c.Map()
	}
	return res
}

func writeResult(w io.Writer, res result, format outputFormat) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return errors.Wrap(err, "format output")
		}
		_, err = w.Write(data)
		return err
	default:
		return writeText(w, res)
	}
}

func writeText(w io.Writer, res result) error {
	label := lipgloss.NewRenderer(w).NewStyle().Bold(true).Width(8)

	fields := []struct{ name, value string }{
		{"Title:", res.Title},
		{"Artist:", res.Artist},
		{"Album:", res.Album},
		{"Number:", res.TrackNumber},
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s %s\n", label.Render(f.name), f.value); err != nil {
			return err
		}
	}

	if res.Tags == nil {
		return nil
	}

	keys := make([]string, 0, len(res.Tags))
	for k := range res.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if _, err := fmt.Fprintf(w, "\n%s %s\n", label.Render("Vendor:"), res.Vendor); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "  %s=%s\n", k, res.Tags[k]); err != nil {
			return err
		}
	}
	return nil
}
