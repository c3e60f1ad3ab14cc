// Package propfile implements ordered properties backed by a file on disk.
//
// The representation is chosen from the file extension unless Options.Format
// overrides it. Mutations go through Update, which serialises writers across
// processes with an flock on "<path>.lock", re-reads the file under the lock
// and replaces it atomically.
package propfile

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"orderedprops/properties"
)

// Options controls how a File is decoded and written back.
type Options struct {
	Format       Format
	SuppressDate bool
	// Encoding is config.EncodingLatin1 or config.EncodingUTF8 and only
	// applies to the text format.
	Encoding    string
	XMLEncoding string
	Comment     string
}

// File is a properties file loaded into memory.
type File struct {
	path   string
	opts   Options
	format Format
	props  *properties.Properties
}

// Open loads path. A missing or empty file yields empty properties; the
// file is created by the first Update or Save.
func Open(path string, opts Options) (*File, error) {
	f := &File{
		path:   path,
		opts:   opts,
		format: resolveFormat(path, opts.Format),
	}
	if err := f.readFromDisk(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file the properties were loaded from.
func (f *File) Path() string { return f.path }

// Format returns the resolved on-disk format.
func (f *File) Format() Format { return f.format }

// Props returns the in-memory properties. Changes made directly are not
// persisted until Save is called.
func (f *File) Props() *properties.Properties { return f.props }

// Update applies fn to a fresh copy of the file contents and writes the
// result back. If fn returns an error nothing is written.
func (f *File) Update(fn func(p *properties.Properties) error) error {
	return f.withLock(func() error {
		if err := f.readFromDisk(); err != nil {
			return err
		}
		if err := fn(f.props); err != nil {
			return err
		}
		return f.write()
	})
}

// Save writes the in-memory properties to disk without re-reading first.
func (f *File) Save() error {
	return f.withLock(f.write)
}

// SaveAs writes the in-memory properties to another path and format,
// keeping the remaining options.
func (f *File) SaveAs(path string, format Format) error {
	target := &File{
		path:   path,
		opts:   f.opts,
		format: resolveFormat(path, format),
		props:  f.props,
	}
	return target.withLock(target.write)
}

func (f *File) newProperties() *properties.Properties {
	if f.opts.SuppressDate {
		return properties.WithoutDateComment()
	}
	return properties.New()
}

func (f *File) lockPath() string {
	return f.path + ".lock"
}

// withLock holds an exclusive flock on the lock file while fn runs.
func (f *File) withLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	lock, err := os.OpenFile(f.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("opening lock: %w", err)
	}
	defer lock.Close()

	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unix.Flock(int(lock.Fd()), unix.LOCK_UN)

	return fn()
}

// readFromDisk replaces f.props with the current file contents.
func (f *File) readFromDisk() error {
	fresh := f.newProperties()

	raw, err := os.ReadFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(raw) > 0 {
		if err := Decode(bytes.NewReader(raw), f.format, fresh, f.opts); err != nil {
			return fmt.Errorf("loading %s: %w", f.path, err)
		}
	}
	f.props = fresh
	return nil
}

func (f *File) write() error {
	var buf bytes.Buffer
	if err := Encode(&buf, f.format, f.props, f.opts); err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}
	return atomicWrite(f.path, buf.Bytes())
}

// atomicWrite writes data to a temporary sibling of path and renames it
// into place.
func atomicWrite(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(randBytes)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
