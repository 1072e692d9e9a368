package main

import "strings"

type direction int

const (
	directionUnknown direction = iota
	directionImport
	directionExport
)

// deduceDirection picks the conversion from the MBTiles file suffix.
func deduceDirection(inputPath, outputPath string) direction {
	if strings.HasSuffix(inputPath, ".mbtiles") && !strings.HasSuffix(outputPath, ".mbtiles") {
		return directionExport
	}
	if strings.HasSuffix(outputPath, ".mbtiles") && !strings.HasSuffix(inputPath, ".mbtiles") {
		return directionImport
	}
	return directionUnknown
}
