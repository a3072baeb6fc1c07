// Package ingestion loads job descriptions and resumes from local files
// and remote URLs into plain text.
package ingestion

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Document is one loaded input with its display name.
type Document struct {
	Name string
	Path string
	Text string
}

// LoadText reads a single document and returns its plain text.
// Supported formats are .txt, .md and .pdf.
func LoadText(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", &NotFoundError{Path: path}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
		return loadPlainText(path)
	case ".pdf":
		return loadPDFText(path)
	default:
		return "", &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// LoadDir loads every supported document from a directory, sorted by
// file name so runs are deterministic.
func LoadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: dir}
		}
		return nil, &ReadError{Path: dir, Cause: err}
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" && ext != ".pdf" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		text, err := LoadText(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{
			Name: DisplayName(entry.Name()),
			Path: path,
			Text: text,
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// DisplayName turns a file name into a human readable candidate name:
// "jane_doe.pdf" becomes "Jane Doe".
func DisplayName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")

	words := strings.Fields(base)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func loadPlainText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Cause: err}
	}
	return string(content), nil
}

func loadPDFText(path string) (string, error) {
	file, reader, err := pdflib.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Cause: err}
	}
	defer func() { _ = file.Close() }()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ReadError{Path: path, Cause: err}
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", &ReadError{Path: path, Cause: err}
	}
	return buf.String(), nil
}
