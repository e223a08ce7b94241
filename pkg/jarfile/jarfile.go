// Package jarfile reads class file bytes out of jar archives.
package jarfile

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// ErrEntryNotFound is returned when the archive has no entry of that name.
var ErrEntryNotFound = errors.New("entry not found")

// ClassEntryName maps an internal class name such as
// hudson/remoting/RemoteClassLoader$ClassLoaderProxy to its jar entry.
func ClassEntryName(className string) string {
	return className + ".class"
}

// ReadEntry returns the contents of the named entry in the jar at path.
func ReadEntry(path, name string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("jar: opening %s: %w", path, err)
	}
	defer zr.Close()

	return readEntry(&zr.Reader, name, path)
}

func readEntry(zr *zip.Reader, name, path string) ([]byte, error) {
	for _, file := range zr.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("jar: opening %s: %w", name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("jar: reading %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("jar: %s in %s: %w", name, path, ErrEntryNotFound)
}
