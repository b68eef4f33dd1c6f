package intake

import "bytes"

// Format is a detected input file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
	FormatTIFF Format = "tif"
)

// Suffix returns the file suffix for the format, including the dot.
func (f Format) Suffix() string {
	return "." + string(f)
}

var (
	pdfMagic  = []byte("%PDF-")
	jpegMagic = []byte{0xFF, 0xD8}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	tiffLE    = []byte{'I', 'I', '*', 0x00}
	tiffBE    = []byte{'M', 'M', 0x00, '*'}
)

// DetectFormat inspects the leading bytes of a payload against a fixed
// ordered list of magic signatures. The first match wins; content that
// matches no signature is treated as PDF.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return FormatTIFF
	default:
		return FormatPDF
	}
}
