package catalog

import (
	"embed"
	"io/fs"
)

// EmbeddedName is the Source name of the built-in data set.
const EmbeddedName = "embedded"

//go:embed data
var embedded embed.FS

// Embedded returns the data set compiled into the binary.
func Embedded() Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// "data" is a valid path, so fs.Sub cannot fail.
		panic(err)
	}
	return Source{Name: EmbeddedName, FS: sub}
}
