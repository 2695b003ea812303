/*
Package library caches the raw output of homology searches.

Search results are keyed by chain identifier, source tag and format, and
named on disk as '{chain}_{tag}_hits.{format}'. A Dir looks results up in a
read-only library directory first and then in the output directory, and
stores new results in the output directory. Next to every stored result it
writes a '.fingerprint' file holding a fingerprint of the searched sequence,
so that a result left behind by a different sequence under the same chain
identifier is treated as a miss rather than silently reused.
*/
package library

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/google/uuid"
)

// fingerprintSpace is the namespace of sequence fingerprints.
var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL,
	[]byte("https://github.com/TuftsBCB/complexfeat/sequence"))

// Fingerprint returns a name-based UUID of a sequence. Equal sequences always
// have equal fingerprints.
func Fingerprint(sequence string) string {
	return uuid.NewSHA1(fingerprintSpace, []byte(sequence)).String()
}

// A Key identifies one search result.
type Key struct {
	Chain  string
	Source string
	Format string

	// Fingerprint of the searched sequence. It is not part of the file name.
	Fingerprint string
}

// Name returns the file name of the result.
func (k Key) Name() string {
	return fmt.Sprintf("%s_%s_hits.%s", k.Chain, k.Source, k.Format)
}

func (k Key) String() string {
	return k.Name()
}

// A Cache looks up and stores search results.
//
// Lookup reports a miss with a nil error. Implementations need not be safe
// for concurrent use, and a Lookup followed by a Store is not atomic.
type Cache interface {
	Lookup(key Key) ([]byte, bool, error)
	Store(key Key, content []byte) error
}

// Dir is a Cache over two directories. Library is searched first and is
// never written to; it may be empty. Output is searched second and receives
// every stored result.
type Dir struct {
	Library string
	Output  string
}

// NewDir returns a Dir, creating the output directory if needed.
func NewDir(library, output string) (*Dir, error) {
	if err := os.MkdirAll(output, 0777); err != nil {
		return nil, fmt.Errorf("Could not create output directory '%s': %s",
			output, err)
	}
	return &Dir{Library: library, Output: output}, nil
}

func (d *Dir) Lookup(key Key) ([]byte, bool, error) {
	for _, dir := range []string{d.Library, d.Output} {
		if len(dir) == 0 {
			continue
		}
		fpath := path.Join(dir, key.Name())
		content, err := ioutil.ReadFile(fpath)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, false, err
		}
		fresh, err := fresh(fpath, key.Fingerprint)
		if err != nil {
			return nil, false, err
		}
		if !fresh {
			continue
		}
		return content, true, nil
	}
	return nil, false, nil
}

func (d *Dir) Store(key Key, content []byte) error {
	fpath := path.Join(d.Output, key.Name())
	if err := ioutil.WriteFile(fpath, content, 0666); err != nil {
		return err
	}
	if len(key.Fingerprint) == 0 {
		return nil
	}
	return ioutil.WriteFile(fpath+".fingerprint",
		[]byte(key.Fingerprint+"\n"), 0666)
}

// fresh reports whether the result at fpath was produced for the sequence
// with the given fingerprint. Results without a fingerprint file are trusted.
func fresh(fpath, fingerprint string) (bool, error) {
	if len(fingerprint) == 0 {
		return true, nil
	}
	stored, err := ioutil.ReadFile(fpath + ".fingerprint")
	if os.IsNotExist(err) {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return string(bytes.TrimSpace(stored)) == fingerprint, nil
}

// Memory is a Cache held in memory, keyed by file name and fingerprint.
type Memory struct {
	entries map[Key][]byte

	// Lookups and Stores count calls, for tests that check cache traffic.
	Lookups, Stores int
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[Key][]byte)}
}

func (m *Memory) Lookup(key Key) ([]byte, bool, error) {
	m.Lookups++
	content, ok := m.entries[key]
	return content, ok, nil
}

func (m *Memory) Store(key Key, content []byte) error {
	m.Stores++
	m.entries[key] = content
	return nil
}
