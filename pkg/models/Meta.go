package models

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var (
	metaKeyRe          = regexp.MustCompile(`^[ ]{0,3}([A-Za-z0-9_-]+):\s*(.*)$`)
	metaContinuationRe = regexp.MustCompile(`^[ ]{4,}(.*)$`)
)

/*
Meta holds the header of an album description file. Keys are lower-cased and
each key may carry several values, one per continuation line:

	Title: Summer 2023
	Thumbnail: beach.jpg
	Authors: Jane
	    John
*/
type Meta map[string][]string

// First returns the first value of key, or an empty string.
func (m Meta) First(key string) string {
	values := m[strings.ToLower(key)]

	if len(values) == 0 {
		return ""
	}

	return values[0]
}

/*
ParseMeta reads the metadata header of a description file. The header ends at
the first blank line or at the first line that is not a key or a
continuation. Everything after it is returned as the description body.
*/
func ParseMeta(r io.Reader) (Meta, string, error) {
	var (
		key     string
		inBody  bool
		body    strings.Builder
		lineNum int
	)

	meta := Meta{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if inBody {
			body.WriteString(line)
			body.WriteString("\n")
			continue
		}

		if lineNum == 1 && strings.TrimSpace(line) == "---" {
			continue
		}

		if strings.TrimSpace(line) == "" || strings.TrimSpace(line) == "---" {
			inBody = true
			continue
		}

		if match := metaKeyRe.FindStringSubmatch(line); match != nil {
			key = strings.ToLower(match[1])
			meta[key] = append(meta[key], strings.TrimSpace(match[2]))
			continue
		}

		if match := metaContinuationRe.FindStringSubmatch(line); match != nil && key != "" {
			meta[key] = append(meta[key], strings.TrimSpace(match[1]))
			continue
		}

		inBody = true
		body.WriteString(line)
		body.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return meta, "", err
	}

	return meta, strings.TrimSpace(body.String()), nil
}
