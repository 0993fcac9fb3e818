// Package fasta reads plasmid FASTA files into pipeline sources.
package fasta

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/liserjrqlxue/goUtil/textUtil"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

// Extensions accepted when scanning a folder.
var Extensions = []string{".fa", ".fasta", ".fa.gz", ".fasta.gz"}

// Parse reads every record of r. Sources are named after name; records past
// the first get the record id appended, name:id.
func Parse(r io.Reader, name string) ([]plasmid.Source, error) {
	t := linear.NewSeq("", nil, alphabet.DNA)
	sc := seqio.NewScanner(fasta.NewReader(r, t))

	var sources []plasmid.Source
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected sequence type %T", name, sc.Seq())
		}
		header := s.Name()
		if desc := s.Description(); desc != "" {
			header += " " + desc
		}
		id := name
		if len(sources) > 0 {
			id = name + ":" + s.Name()
		}
		sources = append(sources, plasmid.Source{ID: id, Header: header, Seq: s.Seq.String()})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return sources, nil
}

// ReadFile parses path; "-" is stdin and a .gz suffix is decompressed.
func ReadFile(path string) ([]plasmid.Source, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc, filepath.Base(path))
}

// ReadList returns the paths listed one per line in path, ignoring blank
// lines and # comments.
func ReadList(path string) []string {
	var paths []string
	for _, line := range textUtil.File2Array(path) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

// Expand replaces folders in paths by their FASTA files, sorted by name.
func Expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if p == "-" {
			files = append(files, p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && isFasta(e.Name()) {
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// ReadAll reads every file in order. Files that cannot be read are returned
// as errors keyed by path so the batch can go on without them.
func ReadAll(paths []string) ([]plasmid.Source, map[string]error) {
	var (
		sources []plasmid.Source
		errs    = make(map[string]error)
	)
	for _, p := range paths {
		s, err := ReadFile(p)
		if err != nil {
			errs[p] = err
			continue
		}
		if len(s) == 0 {
			errs[p] = fmt.Errorf("%s: no FASTA records", p)
			continue
		}
		sources = append(sources, s...)
	}
	return sources, errs
}

func isFasta(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
