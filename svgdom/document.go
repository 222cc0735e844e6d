package svgdom

import (
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// ReadDocument reads a markup document from the stream, decoding legacy
// charsets to UTF-8, and builds the node tree. The returned tree may lack
// a root element; callers should consult Validate before rendering.
func ReadDocument(stream io.Reader) (*Tree, error) {
	decoded, err := charset.NewReader(stream, "")
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, err
	}
	return Build(SplitFragments(string(data))), nil
}

// ReadFile reads the document tree from the named file.
func ReadFile(path string) (*Tree, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadDocument(fin)
}
